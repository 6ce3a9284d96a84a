package krpcgen

// Decode emits the statements that deserialize into access from xdrs.
// See emit_encode.go's codec for why this shares Encode's code path.
func (w *typeWalker) Decode(out *outputWriter, t Type, access string) {
	w.codec(out, t, access, true)
}
