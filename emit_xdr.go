package krpcgen

import "fmt"

// EmitXDRSource renders the xdr_<name> encode/decode function for
// every typedef, enum, struct, and union in h, in declaration order
// so that a type's own function never needs a forward declaration
// beyond the prototypes already emitted into the types header.
func EmitXDRSource(h *Handle, opts *GeneratorOptions) string {
	out := newOutputWriter()
	out.writeil(`#include "types.h"`)
	out.blank()

	w := newTypeWalker(h, opts)

	for _, ref := range h.Order {
		switch ref.Kind {
		case TypeRefTypedef:
			td, _ := h.Typedefs.Get(ref.Name)
			emitTypedefXDR(out, w, td)
		case TypeRefEnum:
			e, _ := h.Enums.Get(ref.Name)
			emitEnumXDR(out, e)
		case TypeRefStruct:
			s, _ := h.Structs.Get(ref.Name)
			emitStructXDR(out, w, s)
		case TypeRefUnion:
			u, _ := h.Unions.Get(ref.Name)
			emitUnionXDR(out, w, u)
		}
		out.blank()
	}
	return out.String()
}

func xdrFuncSignature(out *outputWriter, name string) {
	out.writeilf("bool_t")
	out.writeilf("%s(XDR *xdrs, %s_t *objp)", xdrProcName(name), name)
	out.writeil("{")
}

func emitTypedefXDR(out *outputWriter, w *typeWalker, td *TypedefDef) {
	xdrFuncSignature(out, td.Name)
	out.push()
	if arrTy, ok := td.Type.(*ArrayType); ok {
		w.Encode(out, &ArrayType{Elem: arrTy.Elem, Size: arrTy.Size}, "(*objp)")
	} else {
		w.Encode(out, td.Type, "(*objp)")
	}
	out.writeil("return TRUE;")
	out.pop()
	out.writeil("}")
}

func emitEnumXDR(out *outputWriter, e *EnumDef) {
	xdrFuncSignature(out, e.Name)
	out.push()
	out.writeil("return xdr_enum(xdrs, (enum_t *)objp);")
	out.pop()
	out.writeil("}")
}

func emitStructXDR(out *outputWriter, w *typeWalker, s *StructDef) {
	xdrFuncSignature(out, s.Name)
	out.push()
	for _, f := range s.Fields {
		w.Encode(out, f.Type, fmt.Sprintf("objp->%s", f.Name))
	}
	out.writeil("return TRUE;")
	out.pop()
	out.writeil("}")
}

func emitUnionXDR(out *outputWriter, w *typeWalker, u *UnionDef) {
	xdrFuncSignature(out, u.Name)
	out.push()
	w.Encode(out, u.Discriminant.Type, fmt.Sprintf("objp->%s", u.Discriminant.Name))
	out.writeilf("switch (objp->%s) {", u.Discriminant.Name)
	for _, c := range u.Cases {
		if c.IsDefault {
			out.writeil("default:")
			out.push()
			w.Encode(out, c.Field.Type, fmt.Sprintf("objp->%s_u.%s", u.Name, c.Field.Name))
			out.writeil("break;")
			out.pop()
			continue
		}
		for _, v := range c.Values {
			out.writeilf("case %s:", discriminantLabel(u.Discriminant, v))
		}
		out.push()
		w.Encode(out, c.Field.Type, fmt.Sprintf("objp->%s_u.%s", u.Name, c.Field.Name))
		out.writeil("break;")
		out.pop()
	}
	out.writeil("default:")
	out.push()
	out.writeil("break;")
	out.pop()
	out.writeil("}")
	out.writeil("return TRUE;")
	out.pop()
	out.writeil("}")
}

// discriminantLabel renders a union case label, qualifying an
// IdentValue naming an enum member with the enum's own prefix when
// the discriminant type is itself an enum (matching emitEnum's
// "<enum>_<member>" naming).
func discriminantLabel(disc Field, v Value) string {
	if named, ok := disc.Type.(*NamedType); ok {
		if id, ok := v.(IdentValue); ok {
			return fmt.Sprintf("%s_%s", named.Name, id.Name)
		}
	}
	return v.String()
}
