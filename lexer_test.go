package krpcgen

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var toks []Token
	for {
		sp, err := lex.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		toks = append(toks, sp.Value)
	}
	return toks
}

func TestLexer_LongestMatch(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []Token
	}{
		{
			name: "keyword wins over identifier prefix tie",
			src:  "const",
			expected: []Token{
				{Kind: TokenKeyword, Text: "const"},
			},
		},
		{
			name: "identifier continuation beats shorter keyword match",
			src:  "constant",
			expected: []Token{
				{Kind: TokenIdentifier, Text: "constant"},
			},
		},
		{
			name: "unsigned and int lex as two separate type tokens",
			src:  "unsigned int",
			expected: []Token{
				{Kind: TokenType, Text: "unsigned"},
				{Kind: TokenType, Text: "int"},
			},
		},
		{
			name: "unsigned and hyper stay separate tokens across a comment",
			src:  "unsigned /* width */ hyper",
			expected: []Token{
				{Kind: TokenType, Text: "unsigned"},
				{Kind: TokenType, Text: "hyper"},
			},
		},
		{
			name: "unsigned identifier is not swallowed by the unsigned type token",
			src:  "unsigned_count",
			expected: []Token{
				{Kind: TokenIdentifier, Text: "unsigned_count"},
			},
		},
		{
			name: "separators and brackets",
			src:  "struct foo { int x; };",
			expected: []Token{
				{Kind: TokenKeyword, Text: "struct"},
				{Kind: TokenIdentifier, Text: "foo"},
				{Kind: TokenBracket, Text: "{"},
				{Kind: TokenType, Text: "int"},
				{Kind: TokenIdentifier, Text: "x"},
				{Kind: TokenSeparator, Text: ";"},
				{Kind: TokenBracket, Text: "}"},
				{Kind: TokenSeparator, Text: ";"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(t, tt.src)
			require.Len(t, got, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, want.Kind, got[i].Kind, "token %d kind", i)
				assert.Equal(t, want.Text, got[i].Text, "token %d text", i)
			}
		})
	}
}

func TestLexer_Integers(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected int64
	}{
		{name: "decimal", src: "42", expected: 42},
		{name: "negative decimal", src: "-17", expected: -17},
		{name: "hex", src: "0x2A", expected: 42},
		{name: "octal", src: "0o52", expected: 42},
		{name: "binary", src: "0b101010", expected: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.src)
			require.Len(t, toks, 1)
			assert.Equal(t, TokenLiteral, toks[0].Kind)
			assert.Equal(t, tt.expected, toks[0].IntValue)
		})
	}
}

func TestLexer_CommentsAreTransparent(t *testing.T) {
	toks := lexAll(t, "int /* a block comment */ x; // trailing\n")
	require.Len(t, toks, 3)
	assert.Equal(t, TokenType, toks[0].Kind)
	assert.Equal(t, TokenIdentifier, toks[1].Kind)
	assert.Equal(t, TokenSeparator, toks[2].Kind)
}

func TestLexer_WhitespaceIsSkipped(t *testing.T) {
	toks := lexAll(t, "  \t\nint\n\tx  ")
	require.Len(t, toks, 2)
	assert.Equal(t, "int", toks[0].Text)
	assert.Equal(t, "x", toks[1].Text)
}
