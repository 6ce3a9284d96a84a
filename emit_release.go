package krpcgen

import "fmt"

// Release emits the statements that free any heap memory owned by
// access once the caller has finished with a decoded value. Pointers,
// strings, varrays and fixed arrays are freed inline as plain
// field-by-field cleanup; a named type that uses dynamic memory is
// handed to xdr_free with its xdr_<name> routine. A varray's buffer is
// freed without releasing memory owned by its elements.
func (w *typeWalker) Release(out *outputWriter, t Type, access string) {
	switch v := t.(type) {
	case *PointerType:
		out.writeilf("if (%s != NULL) {", access)
		out.push()
		w.Release(out, v.Elem, fmt.Sprintf("(*%s)", access))
		out.writeilf("free(%s);", access)
		out.writeilf("%s = NULL;", access)
		out.pop()
		out.writeil("}")
	case *VArrayType:
		if _, ok := v.Elem.(*StringType); ok {
			// Matches cFieldDecl's bare char * declaration for a
			// VArray of String.
			out.writeilf("if (%s != NULL) {", access)
			out.push()
			out.writeilf("free(%s);", access)
			out.writeilf("%s = NULL;", access)
			out.pop()
			out.writeil("}")
			return
		}
		out.writeilf("if (%s.val != NULL) {", access)
		out.push()
		out.writeilf("free(%s.val);", access)
		out.writeilf("%s.val = NULL;", access)
		out.pop()
		out.writeil("}")
	case *StringType:
		out.writeilf("if (%s != NULL) {", access)
		out.push()
		out.writeilf("free(%s);", access)
		out.writeilf("%s = NULL;", access)
		out.pop()
		out.writeil("}")
	case *ArrayType:
		if usesDynamicMemory(w.h, v.Elem) {
			out.writeilf("for (i = 0; i < %s; i++) {", v.Size.String())
			out.push()
			w.Release(out, v.Elem, fmt.Sprintf("%s[i]", access))
			out.pop()
			out.writeil("}")
		}
	case *NamedType:
		if usesDynamicMemory(w.h, v) {
			out.writeilf("xdr_free((xdrproc_t)%s, (char *)&(%s));", xdrProcName(v.Name), access)
		}
	default:
		// scalars own no dynamic memory.
	}
}
