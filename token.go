package krpcgen

import "unicode"

// TokenKind classifies an RPCL token for the parser.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenKeyword
	TokenType
	TokenBracket
	TokenSeparator
	TokenOperator
	TokenLiteral
	TokenComment
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenType:
		return "type"
	case TokenBracket:
		return "bracket"
	case TokenSeparator:
		return "separator"
	case TokenOperator:
		return "operator"
	case TokenLiteral:
		return "literal"
	case TokenComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Token is the value produced by the RPCL Engine instantiation; its
// Range is attached separately by Engine.Next via Spanned.
type Token struct {
	Kind     TokenKind
	Text     string
	IntValue int64
}

// keywords are the structural vocabulary of an RPCL specification.
var keywords = []string{
	"const", "typedef", "enum", "struct", "union",
	"switch", "case", "default", "program", "version",
}

// types are the built-in scalar and pseudo-scalar type names.
// "unsigned" is its own token — it only ever modifies a following
// "int" or "hyper" — rather than a combined "unsigned int"/"unsigned
// hyper" literal, so an arbitrary run of whitespace or a comment
// between the two words still lexes correctly.
var types = []string{
	"unsigned", "hyper", "int",
	"float", "double", "quadruple", "bool", "void",
	"opaque", "string",
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentCont(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// DefaultRules returns the ordered rule list used to tokenize an
// RPCL specification: separators, brackets, literals, keywords,
// types, operators, identifiers, comments. Order matters only for
// breaking length ties (e.g. a keyword and an identically-long
// identifier); keywords and types are listed ahead of identifiers so
// "enum" beats a hypothetical 4-rune identifier match on a tie.
func DefaultRules() []MatchRule[Token] {
	var rules []MatchRule[Token]

	for _, sep := range []string{";", ","} {
		s := sep
		rules = append(rules, CharSequence(s, func(text string) Token {
			return Token{Kind: TokenSeparator, Text: text}
		}, nil))
	}

	for _, br := range []string{"{", "}", "[", "]", "(", ")", "<", ">"} {
		b := br
		rules = append(rules, CharSequence(b, func(text string) Token {
			return Token{Kind: TokenBracket, Text: text}
		}, nil))
	}

	rules = append(rules, Integer(func(text string, value int64) Token {
		return Token{Kind: TokenLiteral, Text: text, IntValue: value}
	}))

	for _, kw := range keywords {
		k := kw
		rules = append(rules, CharSequence(k, func(text string) Token {
			return Token{Kind: TokenKeyword, Text: text}
		}, isIdentCont))
	}

	for _, ty := range types {
		t := ty
		rules = append(rules, CharSequence(t, func(text string) Token {
			return Token{Kind: TokenType, Text: text}
		}, isIdentCont))
	}

	for _, op := range []string{"=", ":", "*"} {
		o := op
		rules = append(rules, CharSequence(o, func(text string) Token {
			return Token{Kind: TokenOperator, Text: text}
		}, nil))
	}

	rules = append(rules, AllowedCharWithFirst(func(text string) Token {
		return Token{Kind: TokenIdentifier, Text: text}
	}, isIdentStart, isIdentCont))

	rules = append(rules, commentRule())

	return rules
}

func commentRule() MatchRule[Token] {
	return Comment(func(text string) Token {
		return Token{Kind: TokenComment, Text: text}
	})
}

// IsSpace is the RPCL skip predicate: plain whitespace is transparent
// to the parser.
func IsSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// Lexer wraps the generic Engine with the RPCL rule set and makes
// comments transparent to callers, the way whitespace already is to
// the engine's skip predicate.
type Lexer struct {
	eng *Engine[Token]
}

// NewLexer builds a Lexer over an RPCL specification's full source.
func NewLexer(src []byte) *Lexer {
	return &Lexer{eng: NewEngine(src, IsSpace, DefaultRules())}
}

// Next returns the next non-comment token, or io.EOF once input is
// exhausted.
func (l *Lexer) Next() (Spanned[Token], error) {
	for {
		sp, err := l.eng.Next()
		if err != nil {
			return Spanned[Token]{}, err
		}
		if sp.Value.Kind == TokenComment {
			continue
		}
		return sp, nil
	}
}
