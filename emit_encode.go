package krpcgen

import "fmt"

// Encode emits the statements that serialize the value at access
// (whose C type is t) onto xdrs.
func (w *typeWalker) Encode(out *outputWriter, t Type, access string) {
	w.codec(out, t, access, false)
}

// codec renders the xdr_* call(s) for t at access. Encode and decode
// share this one code path because xdr_* routines are
// direction-agnostic: xdrs->x_op selects XDR_ENCODE or XDR_DECODE at
// runtime, so the generated statement text is identical either way;
// decoding only exists as a separate entry point (emit_decode.go) for
// callers that want to name the direction they mean at the call site.
func (w *typeWalker) codec(out *outputWriter, t Type, access string, decoding bool) {
	switch v := t.(type) {
	case *VoidType:
		return
	case *PointerType:
		guardedCall(out, fmt.Sprintf("xdr_pointer((char **)&(%s), sizeof(%s), (xdrproc_t)%s)",
			access, cTypeName(v.Elem), w.procNameFor(v.Elem)))
	case *ArrayType:
		if _, ok := v.Elem.(*OpaqueType); ok {
			guardedCall(out, fmt.Sprintf("xdr_opaque((char *)%s, %s)", access, v.Size.String()))
			return
		}
		guardedCall(out, fmt.Sprintf("xdr_vector((char *)%s, %s, %s, (xdrproc_t)%s)",
			access, v.Size.String(), w.Size(v.Elem), w.procNameFor(v.Elem)))
	case *VArrayType:
		if _, ok := v.Elem.(*OpaqueType); ok {
			guardedCall(out, fmt.Sprintf("xdr_bytes((char **)&(%s.val), (u_int *)&(%s.len), %s)",
				access, access, w.vlaLimit(v.Max)))
			return
		}
		if _, ok := v.Elem.(*StringType); ok {
			guardedCall(out, fmt.Sprintf("xdr_string(&(%s), %s)", access, w.vlaLimit(v.Max)))
			return
		}
		guardedCall(out, fmt.Sprintf("xdr_array((char **)&(%s.val), (u_int *)&(%s.len), %s, %s, (xdrproc_t)%s)",
			access, access, w.vlaLimit(v.Max), w.Size(v.Elem), w.procNameFor(v.Elem)))
	case *StringType:
		guardedCall(out, fmt.Sprintf("xdr_string(&(%s), %d)", access, w.opts.VLALimit))
	case *OpaqueType:
		guardedCall(out, fmt.Sprintf("xdr_opaque((char *)&(%s), 1)", access))
	case *NamedType:
		guardedCall(out, fmt.Sprintf("%s(xdrs, &(%s))", xdrProcName(v.Name), access))
	default:
		if proc, ok := scalarXDRProc(t); ok {
			guardedCall(out, fmt.Sprintf("%s(xdrs, &(%s))", proc, access))
			return
		}
		out.writeilf("/* unsupported type %s for %s */", t.String(), access)
	}
}
