package krpcgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_VArrayOfStringMatchesBarePointerDeclaration(t *testing.T) {
	w := newTypeWalker(&Handle{}, &GeneratorOptions{VLALimit: 4294967295})
	out := newOutputWriter()
	w.Encode(out, &VArrayType{Elem: &StringType{}}, "objp->name")
	got := out.String()
	assert.Contains(t, got, "xdr_string(&(objp->name), ")
	assert.False(t, strings.Contains(got, ".val"), "xdr_string takes the address of the bare char * field, not .val")
}

func TestEncode_VArrayOfOpaqueUsesLenValStruct(t *testing.T) {
	w := newTypeWalker(&Handle{}, &GeneratorOptions{VLALimit: 4294967295})
	out := newOutputWriter()
	w.Encode(out, &VArrayType{Elem: &OpaqueType{}}, "objp->blob")
	got := out.String()
	assert.Contains(t, got, "xdr_bytes((char **)&(objp->blob.val), (u_int *)&(objp->blob.len), ")
}
