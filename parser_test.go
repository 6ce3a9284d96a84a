package krpcgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModule_Ping(t *testing.T) {
	src := `
program PING_PROG {
	version PING_VERS_PINGBACK {
		void PINGPROC_NULL(void) = 0;
		int PINGPROC_PINGBACK(void) = 1;
	} = 2;
	version PING_VERS_ORIG {
		void PINGPROC_NULL(void) = 0;
	} = 1;
} = 200000;
const PING_VERS = 2;
`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	require.Len(t, mod, 2)

	prog, ok := mod[0].(*ProgramDef)
	require.True(t, ok)
	assert.Equal(t, "PING_PROG", prog.Name)
	assert.EqualValues(t, 200000, prog.Number)
	require.Len(t, prog.Versions, 2)
	assert.EqualValues(t, 2, prog.Versions[0].Number)
	assert.EqualValues(t, 1, prog.Versions[1].Number)
	require.Len(t, prog.Versions[0].Procedures, 2)
	assert.Equal(t, "PINGPROC_PINGBACK", prog.Versions[0].Procedures[1].Name)
	assert.IsType(t, &IntType{}, prog.Versions[0].Procedures[1].ResultType)

	c, ok := mod[1].(*ConstDef)
	require.True(t, ok)
	assert.Equal(t, "PING_VERS", c.Name)
	assert.EqualValues(t, 2, valueOf(c.Value))
}

func TestParseModule_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ParseErrorKind
	}{
		{
			name: "duplicate program number",
			src:  `program A { version V1 { void P1(void) = 0; } = 1; } = 7; program B { version V2 { void P2(void) = 0; } = 1; } = 7;`,
			kind: ErrProgramNumberReassigned,
		},
		{
			name: "duplicate version number within a program",
			src:  `program A { version V1 { void P1(void) = 0; } = 1; version V2 { void P2(void) = 0; } = 1; } = 7;`,
			kind: ErrVersionNumberReassigned,
		},
		{
			name: "duplicate procedure number within a version",
			src:  `program A { version V1 { void P1(void) = 0; int P2(void) = 0; } = 1; } = 7;`,
			kind: ErrProcedureNumberReassigned,
		},
		{
			name: "duplicate type name",
			src:  `struct Foo { int x; }; struct Foo { int y; };`,
			kind: ErrTypeRedefined,
		},
		{
			name: "duplicate identifier across const and enum",
			src:  `const X = 1; enum E { X = 2 };`,
			kind: ErrIdentifierRedefined,
		},
		{
			name: "undefined type reference",
			src:  `struct Foo { Bar b; };`,
			kind: ErrUndefinedType,
		},
		{
			name: "non-positive array size",
			src:  `struct Foo { int x[0]; };`,
			kind: ErrNonPositiveArraySize,
		},
		{
			name: "duplicate struct field",
			src:  `struct Foo { int x; int x; };`,
			kind: ErrStructureFieldRedefined,
		},
		{
			name: "quadruple float is rejected",
			src:  `struct Foo { quadruple x; };`,
			kind: ErrQuadrupleFloatUnsupported,
		},
		{
			name: "bare opaque outside array context",
			src:  `struct Foo { opaque x; };`,
			kind: ErrInvalidScalarContext,
		},
		{
			name: "direct self-reference without a pointer",
			src:  `struct Foo { Foo x; };`,
			kind: ErrUseOfPendingType,
		},
		{
			name: "non-switchable union discriminant",
			src:  `struct Foo { int x; }; union U switch (Foo f) { default: int x; };`,
			kind: ErrNotSwitchingType,
		},
		{
			name: "duplicate union arm value",
			src:  `union U switch (int disc) { case 1: int a; case 1: int b; };`,
			kind: ErrUnionArmRegularRedefined,
		},
		{
			name: "duplicate default arm",
			src:  `union U switch (int disc) { default: int a; default: int b; };`,
			kind: ErrUnionArmDefaultRedefined,
		},
		{
			name: "duplicate version name across different programs",
			src:  `program A { version V { void P1(void) = 0; } = 1; } = 1; program B { version V { void P2(void) = 0; } = 1; } = 2;`,
			kind: ErrIdentifierRedefined,
		},
		{
			name: "duplicate procedure name within a version",
			src:  `program A { version V1 { void P(void) = 0; void P(void) = 1; } = 1; } = 1;`,
			kind: ErrIdentifierRedefined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModule([]byte(tt.src))
			require.Error(t, err)
			pe, ok := err.(*ParseError)
			require.True(t, ok, "expected *ParseError, got %T", err)
			assert.Equal(t, tt.kind, pe.Kind)
		})
	}
}

func TestParseModule_SelfReferenceThroughPointerIsAllowed(t *testing.T) {
	src := `struct Node { int value; Node *next; };`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	require.Len(t, mod, 1)

	s, ok := mod[0].(*StructDef)
	require.True(t, ok)
	require.Len(t, s.Fields, 2)
	ptr, ok := s.Fields[1].Type.(*PointerType)
	require.True(t, ok)
	named, ok := ptr.Elem.(*NamedType)
	require.True(t, ok)
	assert.Equal(t, "Node", named.Name)
}

func TestParseModule_UnsignedIsWhitespaceAndCommentInsensitive(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Type
	}{
		{"single space", `struct Foo { unsigned int x; };`, &UintType{}},
		{"extra whitespace", "struct Foo { unsigned  \t  int x; };", &UintType{}},
		{"comment between words", `struct Foo { unsigned /* width */ hyper x; };`, &UhyperType{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := ParseModule([]byte(tt.src))
			require.NoError(t, err)
			s := mod[0].(*StructDef)
			assert.IsType(t, tt.want, s.Fields[0].Type)
		})
	}
}

func TestParseModule_UnsignedWithoutIntOrHyperIsRejected(t *testing.T) {
	_, err := ParseModule([]byte(`struct Foo { unsigned x; };`))
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpectedToken, pe.Kind)
}

func TestParseModule_UnionAcceptsHyperDiscriminant(t *testing.T) {
	src := `union U switch (hyper disc) { case 1: int a; default: int b; };`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	u, ok := mod[0].(*UnionDef)
	require.True(t, ok)
	assert.IsType(t, &HyperType{}, u.Discriminant.Type)
}

func TestParseModule_UnionRejectsBoolDiscriminant(t *testing.T) {
	src := `union U switch (bool disc) { case 1: int a; };`
	_, err := ParseModule([]byte(src))
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrNotSwitchingType, pe.Kind)
}

func TestParseModule_ProcedureMultiArgumentList(t *testing.T) {
	src := `program A { version V { int P(int, string<>) = 0; } = 1; } = 1;`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	prog := mod[0].(*ProgramDef)
	proc := prog.Versions[0].Procedures[0]
	require.Len(t, proc.ArgTypes, 2)
	assert.IsType(t, &IntType{}, proc.ArgTypes[0])
	assert.IsType(t, &VArrayType{}, proc.ArgTypes[1])
}

func TestParseModule_ProcedureVoidArgumentListIsEmpty(t *testing.T) {
	src := `program A { version V { void P(void) = 0; } = 1; } = 1;`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	prog := mod[0].(*ProgramDef)
	assert.Empty(t, prog.Versions[0].Procedures[0].ArgTypes)
}

func TestParseModule_EnumMixedExplicitAndImplicitValues(t *testing.T) {
	src := `enum Color { RED = 5, GREEN, BLUE = 10, YELLOW };`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	e, ok := mod[0].(*EnumDef)
	require.True(t, ok)
	assert.Equal(t, int64(5), e.Values["RED"])
	assert.Equal(t, int64(6), e.Values["GREEN"])
	assert.Equal(t, int64(10), e.Values["BLUE"])
	assert.Equal(t, int64(11), e.Values["YELLOW"])
}

func TestParseModule_VArrayWithoutExplicitBound(t *testing.T) {
	src := `struct Blob { opaque data<>; };`
	mod, err := ParseModule([]byte(src))
	require.NoError(t, err)
	s := mod[0].(*StructDef)
	va, ok := s.Fields[0].Type.(*VArrayType)
	require.True(t, ok)
	assert.Nil(t, va.Max)
}
