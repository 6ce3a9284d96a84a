package krpcgen

import "fmt"

// cTypeName returns the C type used to store a value of t as a
// struct field or local variable.
func cTypeName(t Type) string {
	switch v := t.(type) {
	case *VoidType:
		return "void"
	case *IntType:
		return "int32_t"
	case *UintType:
		return "uint32_t"
	case *HyperType:
		return "int64_t"
	case *UhyperType:
		return "uint64_t"
	case *FloatType:
		return "float"
	case *DoubleType:
		return "double"
	case *BoolType:
		return "bool_t"
	case *StringType:
		return "char *"
	case *OpaqueType:
		return "u_char"
	case *PointerType:
		return fmt.Sprintf("%s *", cTypeName(v.Elem))
	case *ArrayType:
		return cTypeName(v.Elem)
	case *VArrayType:
		return cTypeName(v.Elem)
	case *NamedType:
		return v.Name + "_t"
	default:
		return "void"
	}
}

// xdrProcName is the "xdr_<type>" encode/decode entry point rpcgen
// output uses by convention for a named (typedef/enum/struct/union)
// type.
func xdrProcName(name string) string {
	return "xdr_" + name
}

// usesDynamicMemory reports whether a value of type t can require
// heap allocation during decode — a pointer, a variable-length array,
// or a named type whose own definition does — and therefore needs a
// matching xdr_free/release call once the caller is done with it.
func usesDynamicMemory(h *Handle, t Type) bool {
	return usesDynamicMemoryVisited(h, t, map[string]bool{})
}

func usesDynamicMemoryVisited(h *Handle, t Type, visiting map[string]bool) bool {
	switch v := t.(type) {
	case *PointerType, *VArrayType, *StringType, *OpaqueType:
		return true
	case *ArrayType:
		return usesDynamicMemoryVisited(h, v.Elem, visiting)
	case *NamedType:
		if visiting[v.Name] {
			return false
		}
		visiting[v.Name] = true
		if td, ok := h.Typedefs.Get(v.Name); ok {
			return usesDynamicMemoryVisited(h, td.Type, visiting)
		}
		if s, ok := h.Structs.Get(v.Name); ok {
			for _, f := range s.Fields {
				if usesDynamicMemoryVisited(h, f.Type, visiting) {
					return true
				}
			}
			return false
		}
		if u, ok := h.Unions.Get(v.Name); ok {
			for _, c := range u.Cases {
				if usesDynamicMemoryVisited(h, c.Field.Type, visiting) {
					return true
				}
			}
			return false
		}
		return false
	default:
		return false
	}
}
