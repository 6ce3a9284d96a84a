package krpcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace_DeclareType(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.DeclareType("Foo", Range{}))
	assert.True(t, ns.HasType("Foo"))
	assert.False(t, ns.HasType("Bar"))

	err := ns.DeclareType("Foo", Range{})
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrTypeRedefined, pe.Kind)
}

func TestNamespace_DeclareIdent(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.DeclareIdent("X", Range{}))
	assert.True(t, ns.HasIdent("X"))
	assert.False(t, ns.HasIdent("Y"))

	err := ns.DeclareIdent("X", Range{})
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrIdentifierRedefined, pe.Kind)
}

func TestNamespace_TypeAndIdentNamespacesAreIndependent(t *testing.T) {
	ns := NewNamespace()
	require.NoError(t, ns.DeclareType("Widget", Range{}))
	// A type name and an identifier name don't collide with each other.
	require.NoError(t, ns.DeclareIdent("Widget", Range{}))
	assert.True(t, ns.HasType("Widget"))
	assert.True(t, ns.HasIdent("Widget"))
}

func TestPendingTypes(t *testing.T) {
	var p pendingTypes
	assert.False(t, p.isPending("Node"))

	p.enter("Node")
	assert.True(t, p.isPending("Node"))
	assert.False(t, p.isPending("Other"))

	p.exit()
	assert.False(t, p.isPending("Node"))
}

func TestNumberRegistry_ProgramUniqueness(t *testing.T) {
	r := newNumberRegistry()
	require.NoError(t, r.declareProgram(1, Range{}))

	err := r.declareProgram(1, Range{})
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrProgramNumberReassigned, pe.Kind)

	// A different program number is fine.
	require.NoError(t, r.declareProgram(2, Range{}))
}

func TestNumberRegistry_VersionUniquenessIsScopedPerProgram(t *testing.T) {
	r := newNumberRegistry()
	require.NoError(t, r.declareProgram(1, Range{}))
	require.NoError(t, r.declareProgram(2, Range{}))

	require.NoError(t, r.declareVersion(1, 1, Range{}))
	err := r.declareVersion(1, 1, Range{})
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, ErrVersionNumberReassigned, pe.Kind)

	// The same version number under a different program doesn't collide.
	require.NoError(t, r.declareVersion(2, 1, Range{}))
}

func TestNumberRegistry_ProcedureUniquenessIsScopedPerVersion(t *testing.T) {
	r := newNumberRegistry()
	require.NoError(t, r.declareProgram(1, Range{}))
	require.NoError(t, r.declareVersion(1, 1, Range{}))
	require.NoError(t, r.declareVersion(1, 2, Range{}))

	require.NoError(t, r.declareProcedure(1, 1, 0, Range{}))
	err := r.declareProcedure(1, 1, 0, Range{})
	require.Error(t, err)
	pe := err.(*ParseError)
	assert.Equal(t, ErrProcedureNumberReassigned, pe.Kind)

	// The same procedure number under a different version doesn't collide.
	require.NoError(t, r.declareProcedure(1, 2, 0, Range{}))
}
