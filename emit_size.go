package krpcgen

import "fmt"

// Size returns a C expression for the storage size of t, used by the
// emitter when it needs a sizeof for element stride (vector/array
// calls, bound checks) rather than a full xdr_ call.
func (w *typeWalker) Size(t Type) string {
	switch v := t.(type) {
	case *VoidType:
		return "0"
	case *ArrayType:
		return fmt.Sprintf("sizeof(%s)", cTypeName(v.Elem))
	case *VArrayType:
		return fmt.Sprintf("sizeof(%s)", cTypeName(v.Elem))
	default:
		return fmt.Sprintf("sizeof(%s)", cTypeName(t))
	}
}
