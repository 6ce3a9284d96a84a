package krpcgen

import "io"

// parser is a recursive-descent parser over the RPCL token stream
// with semantic analysis integrated into each production: namespace
// membership, pending-type discipline, and number uniqueness are
// checked the moment a declaration is recognized, rather than in a
// separate pass over a completed AST.
type parser struct {
	lex     *Lexer
	cur     Spanned[Token]
	atEOF   bool
	ns      *Namespace
	pending pendingTypes
	nums    *numberRegistry
	consts  map[string]int64
	enums   map[string]int64
	// enumTypes tracks which declared type names are enums, since a
	// union's discriminant must resolve to an enum or an integer
	// scalar and Namespace.HasType alone can't distinguish an enum
	// name from a struct/union/typedef name.
	enumTypes map[string]bool
}

// ParseModule parses a complete RPCL specification.
func ParseModule(src []byte) (Module, error) {
	p := &parser{
		lex:       NewLexer(src),
		ns:        NewNamespace(),
		nums:      newNumberRegistry(),
		consts:    make(map[string]int64),
		enums:     make(map[string]int64),
		enumTypes: make(map[string]bool),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var mod Module
	for !p.atEOF {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		mod = append(mod, def)
	}
	return mod, nil
}

func (p *parser) advance() error {
	sp, err := p.lex.Next()
	if err == io.EOF {
		p.atEOF = true
		p.cur = Spanned[Token]{}
		return nil
	}
	if err != nil {
		return lexErrToParseErr(err)
	}
	p.cur = sp
	return nil
}

func lexErrToParseErr(err error) error {
	if le, ok := err.(*LexError); ok {
		switch le.Kind {
		case LexUnexpectedEOF:
			return newParseError(ErrUnexpectedEOF, "", le.Range)
		default:
			return newParseError(ErrUnexpectedToken, "", le.Range)
		}
	}
	return err
}

func (p *parser) curRange() Range {
	return p.cur.Range
}

func (p *parser) isKeyword(text string) bool {
	return !p.atEOF && p.cur.Value.Kind == TokenKeyword && p.cur.Value.Text == text
}

func (p *parser) isBracket(text string) bool {
	return !p.atEOF && p.cur.Value.Kind == TokenBracket && p.cur.Value.Text == text
}

func (p *parser) isSeparator(text string) bool {
	return !p.atEOF && p.cur.Value.Kind == TokenSeparator && p.cur.Value.Text == text
}

func (p *parser) isOperator(text string) bool {
	return !p.atEOF && p.cur.Value.Kind == TokenOperator && p.cur.Value.Text == text
}

func (p *parser) isType(text string) bool {
	return !p.atEOF && p.cur.Value.Kind == TokenType && p.cur.Value.Text == text
}

func (p *parser) expectKeyword(text string) error {
	if !p.isKeyword(text) {
		return p.unexpected(text)
	}
	return p.advance()
}

func (p *parser) expectBracket(text string) error {
	if !p.isBracket(text) {
		return p.unexpected(text)
	}
	return p.advance()
}

func (p *parser) expectSeparator(text string) error {
	if !p.isSeparator(text) {
		return p.unexpected(text)
	}
	return p.advance()
}

func (p *parser) expectOperator(text string) error {
	if !p.isOperator(text) {
		return p.unexpected(text)
	}
	return p.advance()
}

func (p *parser) unexpected(expected string) error {
	if p.atEOF {
		return newParseError(ErrUnexpectedEOF, expected, p.curRange())
	}
	return newParseError(ErrUnexpectedToken, expected, p.curRange())
}

func (p *parser) expectIdentifier() (string, Range, error) {
	if p.atEOF {
		return "", Range{}, newParseError(ErrUnexpectedEOF, "identifier", p.curRange())
	}
	if p.cur.Value.Kind != TokenIdentifier {
		return "", Range{}, newParseError(ErrUnexpectedToken, "identifier", p.curRange())
	}
	name := p.cur.Value.Text
	rg := p.curRange()
	if err := p.advance(); err != nil {
		return "", Range{}, err
	}
	return name, rg, nil
}

// parseDefinition dispatches a single top-level declaration.
func (p *parser) parseDefinition() (Definition, error) {
	if p.atEOF {
		return nil, newParseError(ErrUnexpectedEOF, "definition", p.curRange())
	}
	if p.cur.Value.Kind != TokenKeyword {
		return nil, newParseError(ErrUnknownDefinition, p.cur.Value.Text, p.curRange())
	}
	switch p.cur.Value.Text {
	case "const":
		return p.parseConst()
	case "typedef":
		return p.parseTypedef()
	case "enum":
		return p.parseEnumDef()
	case "struct":
		return p.parseStructDef()
	case "union":
		return p.parseUnionDef()
	case "program":
		return p.parseProgramDef()
	default:
		return nil, newParseError(ErrUnknownDefinition, p.cur.Value.Text, p.curRange())
	}
}

// parseValue consumes a literal integer or an identifier reference to
// a const/enum member, resolving it to a numeric value immediately.
func (p *parser) parseValue() (Value, error) {
	if p.atEOF {
		return nil, newParseError(ErrUnexpectedEOF, "value", p.curRange())
	}
	switch p.cur.Value.Kind {
	case TokenLiteral:
		v := p.cur.Value.IntValue
		if err := p.advance(); err != nil {
			return nil, err
		}
		return NumberValue{Value: v}, nil
	case TokenIdentifier:
		name := p.cur.Value.Text
		rg := p.curRange()
		resolved, ok := p.consts[name]
		if !ok {
			resolved, ok = p.enums[name]
		}
		if !ok {
			return nil, newParseError(ErrUndefinedValue, name, rg)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return IdentValue{Name: name, Resolved: resolved}, nil
	default:
		return nil, newParseError(ErrUnexpectedToken, "value", p.curRange())
	}
}

func valueOf(v Value) int64 {
	switch val := v.(type) {
	case NumberValue:
		return val.Value
	case IdentValue:
		return val.Resolved
	default:
		return 0
	}
}

// parseConst parses "const NAME = VALUE ;".
func (p *parser) parseConst() (Definition, error) {
	rg := p.curRange()
	if err := p.expectKeyword("const"); err != nil {
		return nil, err
	}
	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.ns.DeclareIdent(name, nameRg); err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return nil, err
	}
	p.consts[name] = valueOf(val)
	return &ConstDef{Name: name, Value: val, Range: rg}, nil
}

// parseBaseType parses a scalar keyword, an optional elaborated
// struct/union/enum prefix before a name, or a bare type-name
// reference. It reports whether the resolved name is the type
// currently pending (self-reference), which the caller must pair
// with a pointer declarator.
func (p *parser) parseBaseType() (Type, bool, error) {
	if p.atEOF {
		return nil, false, newParseError(ErrUnexpectedEOF, "type", p.curRange())
	}
	if p.cur.Value.Kind == TokenType {
		text := p.cur.Value.Text
		rg := p.curRange()
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		switch text {
		case "void":
			return &VoidType{}, false, nil
		case "unsigned":
			// "unsigned" is never a type on its own: it must be
			// followed by "int" or "hyper".
			if p.isType("int") {
				if err := p.advance(); err != nil {
					return nil, false, err
				}
				return &UintType{}, false, nil
			}
			if p.isType("hyper") {
				if err := p.advance(); err != nil {
					return nil, false, err
				}
				return &UhyperType{}, false, nil
			}
			return nil, false, newParseError(ErrUnexpectedToken, "int or hyper", p.curRange())
		case "int":
			return &IntType{}, false, nil
		case "hyper":
			return &HyperType{}, false, nil
		case "float":
			return &FloatType{}, false, nil
		case "double":
			return &DoubleType{}, false, nil
		case "quadruple":
			return nil, false, newParseError(ErrQuadrupleFloatUnsupported, text, rg)
		case "bool":
			return &BoolType{}, false, nil
		case "opaque":
			return &OpaqueType{}, false, nil
		case "string":
			return &StringType{}, false, nil
		default:
			return nil, false, newParseError(ErrUndefinedType, text, rg)
		}
	}
	if p.isKeyword("struct") || p.isKeyword("union") || p.isKeyword("enum") {
		if err := p.advance(); err != nil {
			return nil, false, err
		}
	}
	name, rg, err := p.expectIdentifier()
	if err != nil {
		return nil, false, err
	}
	if p.pending.isPending(name) {
		return &NamedType{Name: name}, true, nil
	}
	if !p.ns.HasType(name) {
		return nil, false, newParseError(ErrUndefinedType, name, rg)
	}
	return &NamedType{Name: name}, false, nil
}

// parseArraySize parses "[ VALUE ]", rejecting a non-positive bound.
func (p *parser) parseArraySize() (Value, error) {
	if err := p.expectBracket("["); err != nil {
		return nil, err
	}
	rg := p.curRange()
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if valueOf(val) <= 0 {
		return nil, newParseError(ErrNonPositiveArraySize, val.String(), rg)
	}
	if err := p.expectBracket("]"); err != nil {
		return nil, err
	}
	return val, nil
}

// parseVArrayMax parses "< [ VALUE ] >"; a missing VALUE yields a nil
// Max, meaning the generator's configured VLA limit applies.
func (p *parser) parseVArrayMax() (Value, error) {
	if err := p.expectBracket("<"); err != nil {
		return nil, err
	}
	if p.isBracket(">") {
		return nil, p.advance()
	}
	rg := p.curRange()
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if valueOf(val) <= 0 {
		return nil, newParseError(ErrNonPositiveArraySize, val.String(), rg)
	}
	if err := p.expectBracket(">"); err != nil {
		return nil, err
	}
	return val, nil
}

// parseFieldDecl parses one "<type> [*] <name> [ array-or-varray ] ;"
// declaration, the shape shared by struct fields, union arms, and
// typedef targets. The trailing separator is left for the caller,
// since typedefs, struct fields, and union arms all close differently
// in whether more follows on the same line.
func (p *parser) parseFieldDecl() (Field, error) {
	base, isPendingSelf, err := p.parseBaseType()
	if err != nil {
		return Field{}, err
	}
	typ := base
	if p.isOperator("*") {
		if err := p.advance(); err != nil {
			return Field{}, err
		}
		typ = &PointerType{Elem: base}
	} else if isPendingSelf {
		return Field{}, newParseError(ErrUseOfPendingType, base.String(), p.curRange())
	}

	_, isOpaque := base.(*OpaqueType)
	_, isString := base.(*StringType)

	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return Field{}, err
	}

	switch {
	case p.isBracket("["):
		size, err := p.parseArraySize()
		if err != nil {
			return Field{}, err
		}
		typ = &ArrayType{Elem: typ, Size: size}
	case p.isBracket("<"):
		max, err := p.parseVArrayMax()
		if err != nil {
			return Field{}, err
		}
		typ = &VArrayType{Elem: typ, Max: max}
	default:
		if isOpaque || isString {
			return Field{}, newParseError(ErrInvalidScalarContext, base.String(), nameRg)
		}
	}

	return Field{Name: name, Type: typ, Range: nameRg}, nil
}

// parseTypedef parses "typedef <field-decl> ;".
func (p *parser) parseTypedef() (Definition, error) {
	rg := p.curRange()
	if err := p.expectKeyword("typedef"); err != nil {
		return nil, err
	}
	field, err := p.parseFieldDecl()
	if err != nil {
		return nil, err
	}
	if err := p.ns.DeclareType(field.Name, field.Range); err != nil {
		return nil, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return nil, err
	}
	return &TypedefDef{Name: field.Name, Type: field.Type, Range: rg}, nil
}

// parseEnumMembers parses the "{ NAME [ = VALUE ] , ... }" member list
// of an enum definition.
func (p *parser) parseEnumMembers() ([]string, map[string]int64, error) {
	if err := p.expectBracket("{"); err != nil {
		return nil, nil, err
	}
	var names []string
	values := make(map[string]int64)
	next := int64(0)
	for {
		name, nameRg, err := p.expectIdentifier()
		if err != nil {
			return nil, nil, err
		}
		if err := p.ns.DeclareIdent(name, nameRg); err != nil {
			return nil, nil, err
		}
		val := next
		if p.isOperator("=") {
			if err := p.advance(); err != nil {
				return nil, nil, err
			}
			v, err := p.parseValue()
			if err != nil {
				return nil, nil, err
			}
			val = valueOf(v)
		}
		names = append(names, name)
		values[name] = val
		p.enums[name] = val
		next = val + 1

		if p.isSeparator(",") {
			if err := p.advance(); err != nil {
				return nil, nil, err
			}
			continue
		}
		break
	}
	if err := p.expectBracket("}"); err != nil {
		return nil, nil, err
	}
	return names, values, nil
}

// parseEnumDef parses "enum NAME { ... } ;".
func (p *parser) parseEnumDef() (Definition, error) {
	rg := p.curRange()
	if err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.ns.DeclareType(name, nameRg); err != nil {
		return nil, err
	}
	p.enumTypes[name] = true
	names, values, err := p.parseEnumMembers()
	if err != nil {
		return nil, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return nil, err
	}
	return &EnumDef{Name: name, Names: names, Values: values, Range: rg}, nil
}

// parseStructDef parses "struct NAME { <field-decl> ; ... } ;".
func (p *parser) parseStructDef() (Definition, error) {
	rg := p.curRange()
	if err := p.expectKeyword("struct"); err != nil {
		return nil, err
	}
	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.ns.DeclareType(name, nameRg); err != nil {
		return nil, err
	}
	if err := p.expectBracket("{"); err != nil {
		return nil, err
	}

	p.pending.enter(name)
	defer p.pending.exit()

	seen := make(map[string]bool)
	var fields []Field
	for !p.isBracket("}") {
		field, err := p.parseFieldDecl()
		if err != nil {
			return nil, err
		}
		if seen[field.Name] {
			return nil, newParseError(ErrStructureFieldRedefined, field.Name, field.Range)
		}
		seen[field.Name] = true
		fields = append(fields, field)
		if err := p.expectSeparator(";"); err != nil {
			return nil, err
		}
	}
	if err := p.expectBracket("}"); err != nil {
		return nil, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return nil, err
	}
	return &StructDef{Name: name, Fields: fields, Range: rg}, nil
}

// isSwitchableType reports whether t may be a union's discriminant:
// a signed or unsigned integer of either width, or an enum-named type.
func (p *parser) isSwitchableType(t Type) bool {
	switch v := t.(type) {
	case *IntType, *UintType, *HyperType, *UhyperType:
		return true
	case *NamedType:
		return p.enumTypes[v.Name]
	default:
		return false
	}
}

// parseUnionDef parses:
//
//	union NAME switch ( <field-decl-head> ) {
//	  case VALUE [, VALUE]... : <field-decl> ;
//	  ...
//	  [default : <field-decl> ;]
//	} ;
func (p *parser) parseUnionDef() (Definition, error) {
	rg := p.curRange()
	if err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.ns.DeclareType(name, nameRg); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("switch"); err != nil {
		return nil, err
	}
	if err := p.expectBracket("("); err != nil {
		return nil, err
	}
	discType, _, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	if !p.isSwitchableType(discType) {
		return nil, newParseError(ErrNotSwitchingType, discType.String(), p.curRange())
	}
	discName, discRg, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectBracket(")"); err != nil {
		return nil, err
	}
	if err := p.expectBracket("{"); err != nil {
		return nil, err
	}

	p.pending.enter(name)
	defer p.pending.exit()

	seenValues := make(map[int64]bool)
	haveDefault := false
	var cases []UnionCase
	for !p.isBracket("}") {
		caseRg := p.curRange()
		if p.isKeyword("default") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if haveDefault {
				return nil, newParseError(ErrUnionArmDefaultRedefined, name, caseRg)
			}
			haveDefault = true
			if err := p.expectOperator(":"); err != nil {
				return nil, err
			}
			field, err := p.parseFieldDecl()
			if err != nil {
				return nil, err
			}
			if err := p.expectSeparator(";"); err != nil {
				return nil, err
			}
			cases = append(cases, UnionCase{IsDefault: true, Field: field, Range: caseRg})
			continue
		}

		if err := p.expectKeyword("case"); err != nil {
			return nil, err
		}
		var values []Value
		for {
			vrg := p.curRange()
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if seenValues[valueOf(v)] {
				return nil, newParseError(ErrUnionArmRegularRedefined, v.String(), vrg)
			}
			seenValues[valueOf(v)] = true
			values = append(values, v)
			if p.isSeparator(",") {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expectOperator(":"); err != nil {
			return nil, err
		}
		field, err := p.parseFieldDecl()
		if err != nil {
			return nil, err
		}
		if err := p.expectSeparator(";"); err != nil {
			return nil, err
		}
		cases = append(cases, UnionCase{Values: values, Field: field, Range: caseRg})
	}
	if err := p.expectBracket("}"); err != nil {
		return nil, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return nil, err
	}
	return &UnionDef{
		Name:         name,
		Discriminant: Field{Name: discName, Type: discType, Range: discRg},
		Cases:        cases,
		Range:        rg,
	}, nil
}

// parseProcedureArgs parses "( <arg-type-list> )". A lone "void"
// denotes the empty argument list; otherwise each element is one
// comma-separated base type, optionally followed by a fixed "[n]" or
// variable "<n>"/"<>" array suffix. A pointer suffix is not accepted
// here.
func (p *parser) parseProcedureArgs() ([]Type, error) {
	if err := p.expectBracket("("); err != nil {
		return nil, err
	}
	if p.isType("void") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectBracket(")"); err != nil {
			return nil, err
		}
		return nil, nil
	}
	var args []Type
	for {
		t, _, err := p.parseBaseType()
		if err != nil {
			return nil, err
		}
		switch {
		case p.isBracket("["):
			size, err := p.parseArraySize()
			if err != nil {
				return nil, err
			}
			t = &ArrayType{Elem: t, Size: size}
		case p.isBracket("<"):
			max, err := p.parseVArrayMax()
			if err != nil {
				return nil, err
			}
			t = &VArrayType{Elem: t, Max: max}
		}
		args = append(args, t)
		if p.isSeparator(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectBracket(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseProcedure parses "<result-type> NAME ( <arg-type-list> ) = NUM ;".
func (p *parser) parseProcedure(prog, ver int64) (Procedure, error) {
	rg := p.curRange()
	resultType, _, err := p.parseBaseType()
	if err != nil {
		return Procedure{}, err
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return Procedure{}, err
	}
	argTypes, err := p.parseProcedureArgs()
	if err != nil {
		return Procedure{}, err
	}
	if err := p.expectOperator("="); err != nil {
		return Procedure{}, err
	}
	numRg := p.curRange()
	numVal, err := p.parseValue()
	if err != nil {
		return Procedure{}, err
	}
	num := valueOf(numVal)
	if err := p.nums.declareProcedure(prog, ver, num, numRg); err != nil {
		return Procedure{}, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return Procedure{}, err
	}
	return Procedure{Name: name, Number: num, ArgTypes: argTypes, ResultType: resultType, Range: rg}, nil
}

// parseVersion parses "version NAME { <procedure> ... } = NUM ;".
func (p *parser) parseVersion(prog int64) (VersionDef, error) {
	rg := p.curRange()
	if err := p.expectKeyword("version"); err != nil {
		return VersionDef{}, err
	}
	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return VersionDef{}, err
	}
	if err := p.ns.DeclareIdent(name, nameRg); err != nil {
		return VersionDef{}, err
	}
	if err := p.expectBracket("{"); err != nil {
		return VersionDef{}, err
	}
	// The version number only follows the procedure list, so each
	// version's procedure numbers are checked in a fresh scratch bucket
	// (version 0); procedure names are likewise unique per version.
	p.nums.procedures[prog][0] = make(map[int64]Range)
	procNames := make(map[string]bool)
	var procs []Procedure
	for !p.isBracket("}") {
		proc, err := p.parseProcedure(prog, 0)
		if err != nil {
			return VersionDef{}, err
		}
		if procNames[proc.Name] {
			return VersionDef{}, newParseError(ErrIdentifierRedefined, proc.Name, proc.Range)
		}
		procNames[proc.Name] = true
		procs = append(procs, proc)
	}
	if err := p.expectBracket("}"); err != nil {
		return VersionDef{}, err
	}
	if err := p.expectOperator("="); err != nil {
		return VersionDef{}, err
	}
	numRg := p.curRange()
	numVal, err := p.parseValue()
	if err != nil {
		return VersionDef{}, err
	}
	num := valueOf(numVal)
	if err := p.nums.declareVersion(prog, num, numRg); err != nil {
		return VersionDef{}, err
	}
	if err := p.expectSeparator(";"); err != nil {
		return VersionDef{}, err
	}
	return VersionDef{Name: name, Number: num, Procedures: procs, Range: rg}, nil
}

// parseProgramDef parses "program NAME { <version> ... } = NUM ;".
//
// Procedure numbers are registered against program number 0 during
// parseVersion (the real program number isn't known until the
// trailing "= NUM" is parsed); rekeyProcedures moves them to the
// right bucket once it is.
func (p *parser) parseProgramDef() (Definition, error) {
	rg := p.curRange()
	if err := p.expectKeyword("program"); err != nil {
		return nil, err
	}
	name, nameRg, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.ns.DeclareIdent(name, nameRg); err != nil {
		return nil, err
	}
	if err := p.expectBracket("{"); err != nil {
		return nil, err
	}

	if p.nums.versions[0] == nil {
		p.nums.versions[0] = make(map[int64]Range)
		p.nums.procedures[0] = make(map[int64]map[int64]Range)
	}

	var versions []VersionDef
	for !p.isBracket("}") {
		ver, err := p.parseVersion(0)
		if err != nil {
			return nil, err
		}
		versions = append(versions, ver)
	}
	if err := p.expectBracket("}"); err != nil {
		return nil, err
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	numRg := p.curRange()
	numVal, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	num := valueOf(numVal)
	if err := p.nums.declareProgram(num, numRg); err != nil {
		return nil, err
	}
	p.rekeyProcedures(num, versions)
	if err := p.expectSeparator(";"); err != nil {
		return nil, err
	}
	return &ProgramDef{Name: name, Number: num, Versions: versions, Range: rg}, nil
}

// rekeyProcedures moves the version/procedure numbering tracked under
// the scratch program number 0 to the program's real number, now that
// it's known.
func (p *parser) rekeyProcedures(prog int64, versions []VersionDef) {
	if prog == 0 {
		return
	}
	p.nums.versions[prog] = p.nums.versions[0]
	p.nums.procedures[prog] = p.nums.procedures[0]
	delete(p.nums.versions, 0)
	delete(p.nums.procedures, 0)
	p.nums.versions[0] = make(map[int64]Range)
	p.nums.procedures[0] = make(map[int64]map[int64]Range)
}
