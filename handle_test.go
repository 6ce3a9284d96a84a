package krpcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	// Overwriting an existing key keeps its original position.
	m.Set("c", 30)
	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	v, _ = m.Get("c")
	assert.Equal(t, 30, v)
}

func TestNewHandle_OrdersDeclarationsByAppearance(t *testing.T) {
	src := `
typedef int first_t;
struct second { int x; };
enum third { A, B };
union fourth switch (int disc) { default: int x; };
`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)

	h, err := NewHandle(mod)
	require.NoError(t, err)

	require.Len(t, h.Order, 4)
	assert.Equal(t, TypeRef{TypeRefTypedef, "first_t"}, h.Order[0])
	assert.Equal(t, TypeRef{TypeRefStruct, "second"}, h.Order[1])
	assert.Equal(t, TypeRef{TypeRefEnum, "third"}, h.Order[2])
	assert.Equal(t, TypeRef{TypeRefUnion, "fourth"}, h.Order[3])
}

func TestHandle_ResolveType_FollowsTypedefChain(t *testing.T) {
	src := `
typedef int meters_t;
typedef meters_t distance_t;
`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	h, err := NewHandle(mod)
	require.NoError(t, err)

	distance, ok := h.Typedefs.Get("distance_t")
	require.True(t, ok)
	resolved := h.ResolveType(distance.Type)
	assert.IsType(t, &IntType{}, resolved)
}
