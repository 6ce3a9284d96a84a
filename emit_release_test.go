package krpcgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelease_VArrayOfStringFreesBarePointer(t *testing.T) {
	w := newTypeWalker(&Handle{}, &GeneratorOptions{})
	out := newOutputWriter()
	w.Release(out, &VArrayType{Elem: &StringType{}}, "objp->name")
	got := out.String()
	assert.Contains(t, got, "if (objp->name != NULL) {")
	assert.Contains(t, got, "free(objp->name);")
	assert.False(t, strings.Contains(got, ".val"), "VArray of String must not free through .val")
}

func TestRelease_VArrayOfOpaqueFreesVal(t *testing.T) {
	w := newTypeWalker(&Handle{}, &GeneratorOptions{})
	out := newOutputWriter()
	w.Release(out, &VArrayType{Elem: &OpaqueType{}}, "objp->blob")
	got := out.String()
	assert.Contains(t, got, "if (objp->blob.val != NULL) {")
	assert.Contains(t, got, "free(objp->blob.val);")
}
