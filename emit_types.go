package krpcgen

import "fmt"

// cFieldDecl renders one struct/union field or a typedef target as a
// C declaration line (without the trailing semicolon).
func cFieldDecl(f Field) string {
	switch t := f.Type.(type) {
	case *ArrayType:
		return fmt.Sprintf("%s %s[%s]", cTypeName(t.Elem), f.Name, t.Size.String())
	case *VArrayType:
		// A VArray of String (or Opaque) is a single length-prefixed
		// string (or byte string) on the wire, not a generic varying
		// array: String collapses to the same bare char * a scalar
		// string field gets, carrying its own length out of band via
		// strlen; Opaque keeps the generic {len,val} shape, since
		// xdr_bytes already expects that struct.
		if _, ok := t.Elem.(*StringType); ok {
			return fmt.Sprintf("char *%s", f.Name)
		}
		return fmt.Sprintf("struct {\n\t\tu_int len;\n\t\t%s *val;\n\t} %s", cTypeName(t.Elem), f.Name)
	case *PointerType:
		return fmt.Sprintf("%s *%s", cTypeName(t.Elem), f.Name)
	default:
		return fmt.Sprintf("%s %s", cTypeName(f.Type), f.Name)
	}
}

// EmitTypesHeader renders the declarations for every typedef, enum,
// struct, and union in h, in the order they appeared in the source,
// plus the xdr_<name> prototypes the rest of the tree calls.
func EmitTypesHeader(h *Handle) string {
	out := newOutputWriter()
	out.writeil("#ifndef KRPCGEN_TYPES_H")
	out.writeil("#define KRPCGEN_TYPES_H")
	out.blank()
	out.writeil("#include <rpc/rpc.h>")
	out.blank()

	for _, ref := range h.Order {
		switch ref.Kind {
		case TypeRefTypedef:
			td, _ := h.Typedefs.Get(ref.Name)
			emitTypedef(out, td)
		case TypeRefEnum:
			e, _ := h.Enums.Get(ref.Name)
			emitEnum(out, e)
		case TypeRefStruct:
			s, _ := h.Structs.Get(ref.Name)
			emitStruct(out, s)
		case TypeRefUnion:
			u, _ := h.Unions.Get(ref.Name)
			emitUnion(out, u)
		}
		out.blank()
	}

	for _, ref := range h.Order {
		out.writeilf("extern bool_t %s(XDR *, %s_t *);", xdrProcName(ref.Name), ref.Name)
	}
	out.blank()
	out.writeil("#endif")
	return out.String()
}

func emitTypedef(out *outputWriter, td *TypedefDef) {
	decl := cFieldDecl(Field{Name: td.Name + "_t", Type: td.Type})
	out.writeilf("typedef %s;", decl)
}

func emitEnum(out *outputWriter, e *EnumDef) {
	out.writeilf("typedef enum {")
	out.push()
	for i, name := range e.Names {
		sep := ","
		if i == len(e.Names)-1 {
			sep = ""
		}
		out.writeilf("%s_%s = %d%s", e.Name, name, e.Values[name], sep)
	}
	out.pop()
	out.writeilf("} %s_t;", e.Name)
}

func emitStruct(out *outputWriter, s *StructDef) {
	out.writeilf("typedef struct {")
	out.push()
	for _, f := range s.Fields {
		out.writeilf("%s;", cFieldDecl(f))
	}
	out.pop()
	out.writeilf("} %s_t;", s.Name)
}

func emitUnion(out *outputWriter, u *UnionDef) {
	out.writeilf("typedef struct {")
	out.push()
	out.writeilf("%s;", cFieldDecl(u.Discriminant))
	out.writeilf("union {")
	out.push()
	for _, c := range u.Cases {
		out.writeilf("%s;", cFieldDecl(c.Field))
	}
	out.pop()
	out.writeilf("} %s_u;", u.Name)
	out.pop()
	out.writeilf("} %s_t;", u.Name)
}
