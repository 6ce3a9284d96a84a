package krpcgen

import "fmt"

// typeWalker implements the type-directed emission contracts: the C
// size expression for a type, and the encode/decode/release
// statements for a field reached through a given access expression
// (e.g. "objp->field" or "(*objp)").
type typeWalker struct {
	h    *Handle
	opts *GeneratorOptions
}

func newTypeWalker(h *Handle, opts *GeneratorOptions) *typeWalker {
	return &typeWalker{h: h, opts: opts}
}

func scalarXDRProc(t Type) (string, bool) {
	switch t.(type) {
	case *IntType:
		return "xdr_int32_t", true
	case *UintType:
		return "xdr_uint32_t", true
	case *HyperType:
		return "xdr_int64_t", true
	case *UhyperType:
		return "xdr_uint64_t", true
	case *FloatType:
		return "xdr_float", true
	case *DoubleType:
		return "xdr_double", true
	case *BoolType:
		return "xdr_bool", true
	default:
		return "", false
	}
}

func (w *typeWalker) vlaLimit(max Value) string {
	if max == nil {
		return fmt.Sprintf("%d", w.opts.VLALimit)
	}
	return max.String()
}

// guardedCall emits "if (!CALL) { return FALSE; }" for one xdr_*
// invocation, the idiom rpcgen-generated encode/decode bodies use
// throughout.
func guardedCall(out *outputWriter, call string) {
	out.writeilf("if (!%s) {", call)
	out.push()
	out.writeil("return FALSE;")
	out.pop()
	out.writeil("}")
}

// procNameFor is the xdrproc_t-compatible function name used as a
// callback argument to xdr_vector/xdr_array/xdr_pointer: either a
// scalar's own xdr_ function or a named type's generated one.
func (w *typeWalker) procNameFor(t Type) string {
	if proc, ok := scalarXDRProc(t); ok {
		return proc
	}
	if named, ok := t.(*NamedType); ok {
		return xdrProcName(named.Name)
	}
	return "xdr_void"
}
