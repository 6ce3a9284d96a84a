package krpcgen

import "fmt"

// LexErrorKind discriminates the ways the lexer can fail to produce a
// token.
type LexErrorKind int

const (
	// LexUnexpectedEOF means input ended in the middle of a token
	// that required more input to resolve.
	LexUnexpectedEOF LexErrorKind = iota
	// LexUnknownToken means no rule matched the rune at the current
	// position.
	LexUnknownToken
)

func (k LexErrorKind) String() string {
	switch k {
	case LexUnexpectedEOF:
		return "unexpected end of input"
	case LexUnknownToken:
		return "unknown token"
	default:
		return "lex error"
	}
}

// LexError reports a lexical failure at a source Range.
type LexError struct {
	Kind  LexErrorKind
	Range Range
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Kind, e.Range)
}

var errAmbiguousGrammar = &LexError{Kind: LexUnknownToken, Range: Range{}}

// ParseErrorKind enumerates every way the parser and its integrated
// semantic analysis can reject a specification. It is a closed set:
// callers type-switch or compare Kind directly instead of matching on
// error text.
type ParseErrorKind int

const (
	// ErrUnknownDefinition: a top-level keyword wasn't one of const,
	// typedef, enum, struct, union, or program.
	ErrUnknownDefinition ParseErrorKind = iota
	// ErrUnexpectedToken: the grammar expected one token kind/text
	// and got another.
	ErrUnexpectedToken
	// ErrExpressionNotClosed: a bracketed construct (struct body,
	// union body, array size expression, argument list) hit EOF or a
	// mismatched closer before its closing delimiter.
	ErrExpressionNotClosed
	// ErrUnexpectedEOF: input ended where the grammar still expected
	// a token.
	ErrUnexpectedEOF
	// ErrUndefinedType: a type name was referenced that was never
	// declared (and isn't a built-in scalar).
	ErrUndefinedType
	// ErrUndefinedValue: an identifier was used in a value position
	// (enum initializer, array size, union discriminant case) that
	// wasn't declared as a constant or enumerator.
	ErrUndefinedValue
	// ErrNonPositiveArraySize: a fixed-size array or VLA bound
	// evaluated to zero or a negative number.
	ErrNonPositiveArraySize
	// ErrTypeRedefined: a typedef, enum, struct, or union name
	// collided with an existing type name.
	ErrTypeRedefined
	// ErrIdentifierRedefined: a const or enumerator name collided
	// with an existing value-namespace identifier.
	ErrIdentifierRedefined
	// ErrStructureFieldRedefined: two fields of the same struct share
	// a name.
	ErrStructureFieldRedefined
	// ErrNotSwitchingType: a union's discriminant type wasn't an enum
	// or an integer scalar.
	ErrNotSwitchingType
	// ErrUnionArmRegularRedefined: a union case value was listed more
	// than once among its named arms.
	ErrUnionArmRegularRedefined
	// ErrUnionArmDefaultRedefined: a union declared more than one
	// default arm.
	ErrUnionArmDefaultRedefined
	// ErrUseOfPendingType: a struct or union referenced itself other
	// than through a pointer field, or referenced another
	// still-being-declared type directly.
	ErrUseOfPendingType
	// ErrProgramNumberReassigned: two program blocks share a program
	// number.
	ErrProgramNumberReassigned
	// ErrVersionNumberReassigned: two versions of the same program
	// share a version number.
	ErrVersionNumberReassigned
	// ErrProcedureNumberReassigned: two procedures of the same
	// version share a procedure number.
	ErrProcedureNumberReassigned
	// ErrQuadrupleFloatUnsupported: a quadruple field was declared;
	// krpcgen has no ABI for a 128-bit C float type and rejects it at
	// parse time rather than emitting something the C compiler would
	// reject instead.
	ErrQuadrupleFloatUnsupported
	// ErrInvalidScalarContext: an opaque or string type was declared
	// outside of an array/varray context, where it has no fixed
	// representation.
	ErrInvalidScalarContext
)

var parseErrorKindNames = map[ParseErrorKind]string{
	ErrUnknownDefinition:         "unknown definition",
	ErrUnexpectedToken:           "unexpected token",
	ErrExpressionNotClosed:       "expression not closed",
	ErrUnexpectedEOF:             "unexpected end of input",
	ErrUndefinedType:             "undefined type",
	ErrUndefinedValue:            "undefined value",
	ErrNonPositiveArraySize:      "non-positive array size",
	ErrTypeRedefined:             "type redefined",
	ErrIdentifierRedefined:       "identifier redefined",
	ErrStructureFieldRedefined:   "structure field redefined",
	ErrNotSwitchingType:          "not a switching type",
	ErrUnionArmRegularRedefined:  "union arm redefined",
	ErrUnionArmDefaultRedefined:  "union default arm redefined",
	ErrUseOfPendingType:          "use of pending type",
	ErrProgramNumberReassigned:   "program number reassigned",
	ErrVersionNumberReassigned:   "version number reassigned",
	ErrProcedureNumberReassigned: "procedure number reassigned",
	ErrQuadrupleFloatUnsupported: "quadruple float unsupported",
	ErrInvalidScalarContext:      "invalid scalar context",
}

func (k ParseErrorKind) String() string {
	if s, ok := parseErrorKindNames[k]; ok {
		return s
	}
	return "parse error"
}

// ParseError is the single error type returned by the parser and its
// integrated semantic analysis. Kind discriminates 17 grammar/semantic
// failures (a redefined union arm is split into its regular and
// default cases) plus two analyzer-level additions; Detail
// carries the offending text (a token lexeme, identifier, or type
// name) and Range locates it in the source.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
	Range  Range
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Range)
	}
	return fmt.Sprintf("%s: %q at %s", e.Kind, e.Detail, e.Range)
}

func newParseError(kind ParseErrorKind, detail string, rg Range) *ParseError {
	return &ParseError{Kind: kind, Detail: detail, Range: rg}
}
