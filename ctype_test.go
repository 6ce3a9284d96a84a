package krpcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCTypeName(t *testing.T) {
	tests := []struct {
		name string
		t    Type
		want string
	}{
		{"void", &VoidType{}, "void"},
		{"int", &IntType{}, "int32_t"},
		{"unsigned int", &UintType{}, "uint32_t"},
		{"hyper", &HyperType{}, "int64_t"},
		{"unsigned hyper", &UhyperType{}, "uint64_t"},
		{"float", &FloatType{}, "float"},
		{"double", &DoubleType{}, "double"},
		{"bool", &BoolType{}, "bool_t"},
		{"string", &StringType{}, "char *"},
		{"opaque", &OpaqueType{}, "u_char"},
		{"pointer to int", &PointerType{Elem: &IntType{}}, "int32_t *"},
		{"fixed array of int", &ArrayType{Elem: &IntType{}}, "int32_t"},
		{"varying array of int", &VArrayType{Elem: &IntType{}}, "int32_t"},
		{"named type", &NamedType{Name: "Widget"}, "Widget_t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cTypeName(tt.t))
		})
	}
}

func TestXDRProcName(t *testing.T) {
	assert.Equal(t, "xdr_Widget", xdrProcName("Widget"))
}

func TestUsesDynamicMemory(t *testing.T) {
	src := `
struct Leaf { int x; };
struct Branch { Leaf l; int *p; };
struct Cyclic { Cyclic *next; };
typedef opaque blob_t<>;
`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	h, err := NewHandle(mod)
	require.NoError(t, err)

	leaf, ok := h.Structs.Get("Leaf")
	require.True(t, ok)
	assert.False(t, usesDynamicMemory(h, &NamedType{Name: "Leaf"}), "struct with only scalar fields shouldn't need release")
	_ = leaf

	assert.True(t, usesDynamicMemory(h, &NamedType{Name: "Branch"}), "struct containing a pointer field needs release")

	// A struct that only references itself through a pointer must not
	// recurse forever; the visited-set breaks the cycle.
	assert.NotPanics(t, func() {
		usesDynamicMemory(h, &NamedType{Name: "Cyclic"})
	})

	blob, ok := h.Typedefs.Get("blob_t")
	require.True(t, ok)
	assert.True(t, usesDynamicMemory(h, blob.Type))
}
