package krpcgen

import "fmt"

// Value is a constant expression appearing where RPCL allows either a
// literal integer or a reference to a previously-declared const or
// enum member: array/varray bounds, enum initializers, union case
// labels.
type Value interface {
	isValue()
	String() string
}

// NumberValue is an integer literal, already resolved to its decimal
// value regardless of the radix it was written in.
type NumberValue struct {
	Value int64
}

func (NumberValue) isValue()          {}
func (v NumberValue) String() string  { return fmt.Sprintf("%d", v.Value) }

// IdentValue is a reference to a const or enum member; the parser
// resolves it to a numeric value at parse time and carries that
// resolution alongside the name so the emitter never has to look it
// up again.
type IdentValue struct {
	Name    string
	Resolved int64
}

func (IdentValue) isValue()         {}
func (v IdentValue) String() string { return v.Name }

// TypeVisitor dispatches over the closed set of concrete Type
// implementations, mirroring the Accept/Visitor shape used for AST
// nodes elsewhere in the package.
type TypeVisitor interface {
	VisitVoid(*VoidType) error
	VisitInt(*IntType) error
	VisitUint(*UintType) error
	VisitHyper(*HyperType) error
	VisitUhyper(*UhyperType) error
	VisitFloat(*FloatType) error
	VisitDouble(*DoubleType) error
	VisitBool(*BoolType) error
	VisitString(*StringType) error
	VisitOpaque(*OpaqueType) error
	VisitPointer(*PointerType) error
	VisitArray(*ArrayType) error
	VisitVArray(*VArrayType) error
	VisitNamed(*NamedType) error
}

// Type is the closed sum of RPCL type expressions.
type Type interface {
	Accept(TypeVisitor) error
	String() string
}

type VoidType struct{}
type IntType struct{}
type UintType struct{}
type HyperType struct{}
type UhyperType struct{}
type FloatType struct{}
type DoubleType struct{}
type BoolType struct{}

// StringType and OpaqueType only ever appear as the element type of
// an ArrayType or VArrayType in a struct field, union arm, or typedef;
// the parser rejects a bare one there with ErrInvalidScalarContext.
// Procedure argument and result types are not checked for this.
type StringType struct{}
type OpaqueType struct{}

// PointerType marks a field as holding a pointer to Elem, the only
// legal way for a struct or union to refer to itself.
type PointerType struct{ Elem Type }

// ArrayType is a fixed-length array of Elem with compile-time-known
// Size.
type ArrayType struct {
	Elem Type
	Size Value
}

// VArrayType is a variable-length array of Elem. Max is nil when the
// declaration didn't name an explicit bound, in which case the
// generator's configured VLA limit applies.
type VArrayType struct {
	Elem Type
	Max  Value
}

// NamedType references a previously-declared typedef, enum, struct,
// or union by name.
type NamedType struct{ Name string }

func (t *VoidType) Accept(v TypeVisitor) error    { return v.VisitVoid(t) }
func (t *IntType) Accept(v TypeVisitor) error     { return v.VisitInt(t) }
func (t *UintType) Accept(v TypeVisitor) error    { return v.VisitUint(t) }
func (t *HyperType) Accept(v TypeVisitor) error   { return v.VisitHyper(t) }
func (t *UhyperType) Accept(v TypeVisitor) error  { return v.VisitUhyper(t) }
func (t *FloatType) Accept(v TypeVisitor) error   { return v.VisitFloat(t) }
func (t *DoubleType) Accept(v TypeVisitor) error  { return v.VisitDouble(t) }
func (t *BoolType) Accept(v TypeVisitor) error    { return v.VisitBool(t) }
func (t *StringType) Accept(v TypeVisitor) error  { return v.VisitString(t) }
func (t *OpaqueType) Accept(v TypeVisitor) error  { return v.VisitOpaque(t) }
func (t *PointerType) Accept(v TypeVisitor) error { return v.VisitPointer(t) }
func (t *ArrayType) Accept(v TypeVisitor) error   { return v.VisitArray(t) }
func (t *VArrayType) Accept(v TypeVisitor) error  { return v.VisitVArray(t) }
func (t *NamedType) Accept(v TypeVisitor) error   { return v.VisitNamed(t) }

func (t *VoidType) String() string   { return "void" }
func (t *IntType) String() string    { return "int" }
func (t *UintType) String() string   { return "unsigned int" }
func (t *HyperType) String() string  { return "hyper" }
func (t *UhyperType) String() string { return "unsigned hyper" }
func (t *FloatType) String() string  { return "float" }
func (t *DoubleType) String() string { return "double" }
func (t *BoolType) String() string   { return "bool" }
func (t *StringType) String() string { return "string" }
func (t *OpaqueType) String() string { return "opaque" }
func (t *PointerType) String() string {
	return fmt.Sprintf("%s*", t.Elem.String())
}
func (t *ArrayType) String() string {
	return fmt.Sprintf("%s[%s]", t.Elem.String(), t.Size.String())
}
func (t *VArrayType) String() string {
	if t.Max == nil {
		return fmt.Sprintf("%s<>", t.Elem.String())
	}
	return fmt.Sprintf("%s<%s>", t.Elem.String(), t.Max.String())
}
func (t *NamedType) String() string { return t.Name }

// DefinitionVisitor dispatches over the closed set of top-level RPCL
// definitions.
type DefinitionVisitor interface {
	VisitConst(*ConstDef) error
	VisitTypedef(*TypedefDef) error
	VisitEnum(*EnumDef) error
	VisitStruct(*StructDef) error
	VisitUnion(*UnionDef) error
	VisitProgram(*ProgramDef) error
}

// Definition is the closed sum of top-level RPCL declarations.
type Definition interface {
	Accept(DefinitionVisitor) error
	DefName() string
}

// ConstDef binds a name to an integer value usable anywhere a Value
// is expected.
type ConstDef struct {
	Name  string
	Value Value
	Range Range
}

// TypedefDef aliases Type under Name.
type TypedefDef struct {
	Name  string
	Type  Type
	Range Range
}

// EnumDef declares a named integer enumeration; Names preserves
// declaration order, Values maps each name to its resolved value.
type EnumDef struct {
	Name   string
	Names  []string
	Values map[string]int64
	Range  Range
}

// Field is a single struct field, union arm payload, or typedef
// target declaration.
type Field struct {
	Name  string
	Type  Type
	Range Range
}

// StructDef declares a named aggregate. Field order is preserved by
// the slice, matching RPCL/XDR and C struct layout semantics.
type StructDef struct {
	Name   string
	Fields []Field
	Range  Range
}

// UnionCase is one "case VALUE:" arm of a union, or the default arm
// when IsDefault is set (Values is then empty).
type UnionCase struct {
	Values    []Value
	IsDefault bool
	Field     Field
	Range     Range
}

// UnionDef declares a discriminated union switching on Discriminant.
type UnionDef struct {
	Name         string
	Discriminant Field
	Cases        []UnionCase
	Range        Range
}

// Procedure is one RPC procedure inside a VersionDef. ArgTypes is the
// ordered argument list; it is empty for a procedure declared to take
// "(void)".
type Procedure struct {
	Name       string
	Number     int64
	ArgTypes   []Type
	ResultType Type
	Range      Range
}

// VersionDef groups the procedures exposed by one version of a
// ProgramDef.
type VersionDef struct {
	Name       string
	Number     int64
	Procedures []Procedure
	Range      Range
}

// ProgramDef is a complete RPC program: a program number and the
// versions of it that coexist on the wire.
type ProgramDef struct {
	Name     string
	Number   int64
	Versions []VersionDef
	Range    Range
}

func (d *ConstDef) Accept(v DefinitionVisitor) error   { return v.VisitConst(d) }
func (d *TypedefDef) Accept(v DefinitionVisitor) error { return v.VisitTypedef(d) }
func (d *EnumDef) Accept(v DefinitionVisitor) error    { return v.VisitEnum(d) }
func (d *StructDef) Accept(v DefinitionVisitor) error  { return v.VisitStruct(d) }
func (d *UnionDef) Accept(v DefinitionVisitor) error   { return v.VisitUnion(d) }
func (d *ProgramDef) Accept(v DefinitionVisitor) error { return v.VisitProgram(d) }

func (d *ConstDef) DefName() string   { return d.Name }
func (d *TypedefDef) DefName() string { return d.Name }
func (d *EnumDef) DefName() string    { return d.Name }
func (d *StructDef) DefName() string  { return d.Name }
func (d *UnionDef) DefName() string   { return d.Name }
func (d *ProgramDef) DefName() string { return d.Name }

// Module is a complete parsed specification: every top-level
// definition, in declaration order.
type Module []Definition
