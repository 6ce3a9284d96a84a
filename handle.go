package krpcgen

import "fmt"

// OrderedMap is a hash map plus a parallel insertion-order slice — an
// associative container that still iterates in declaration order, the
// shape the emitter needs for typedef/enum/struct/union tables and
// that a bare map cannot give it.
type OrderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{index: make(map[K]int)}
}

// Set inserts or overwrites k. It reports whether k was already
// present (overwriting preserves its original position).
func (m *OrderedMap[K, V]) Set(k K, v V) bool {
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return true
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	return false
}

// Get returns the value for k and whether it was present.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	if i, ok := m.index[k]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether k is present.
func (m *OrderedMap[K, V]) Has(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Keys returns every key in insertion order.
func (m *OrderedMap[K, V]) Keys() []K { return m.keys }

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// Range calls fn for every entry in insertion order, stopping early
// if fn returns false.
func (m *OrderedMap[K, V]) Range(fn func(K, V) bool) {
	for i, k := range m.keys {
		if !fn(k, m.vals[i]) {
			return
		}
	}
}

// TypeRefKind distinguishes the four kinds of named type a TypeRef
// can point at.
type TypeRefKind int

const (
	TypeRefTypedef TypeRefKind = iota
	TypeRefEnum
	TypeRefStruct
	TypeRefUnion
)

func (k TypeRefKind) String() string {
	switch k {
	case TypeRefTypedef:
		return "typedef"
	case TypeRefEnum:
		return "enum"
	case TypeRefStruct:
		return "struct"
	case TypeRefUnion:
		return "union"
	default:
		return "unknown"
	}
}

// TypeRef names one declared type, in the order it appeared in the
// specification; the emitter walks Handle.Order to emit declarations
// in an order the C compiler can always resolve (a type is never
// referenced, except through a pointer, before its own declaration).
type TypeRef struct {
	Kind TypeRefKind
	Name string
}

// Handle is the indexed view of a parsed Module the emitter consumes:
// every definition looked up by name, plus the declaration order of
// the named types.
type Handle struct {
	Consts   *OrderedMap[string, *ConstDef]
	Typedefs *OrderedMap[string, *TypedefDef]
	Enums    *OrderedMap[string, *EnumDef]
	Structs  *OrderedMap[string, *StructDef]
	Unions   *OrderedMap[string, *UnionDef]
	Programs *OrderedMap[string, *ProgramDef]
	Order    []TypeRef
}

// NewHandle indexes a Module that has already passed the parser's
// semantic analysis; it does not re-validate uniqueness.
func NewHandle(mod Module) (*Handle, error) {
	h := &Handle{
		Consts:   NewOrderedMap[string, *ConstDef](),
		Typedefs: NewOrderedMap[string, *TypedefDef](),
		Enums:    NewOrderedMap[string, *EnumDef](),
		Structs:  NewOrderedMap[string, *StructDef](),
		Unions:   NewOrderedMap[string, *UnionDef](),
		Programs: NewOrderedMap[string, *ProgramDef](),
	}
	for _, def := range mod {
		switch d := def.(type) {
		case *ConstDef:
			h.Consts.Set(d.Name, d)
		case *TypedefDef:
			h.Typedefs.Set(d.Name, d)
			h.Order = append(h.Order, TypeRef{TypeRefTypedef, d.Name})
		case *EnumDef:
			h.Enums.Set(d.Name, d)
			h.Order = append(h.Order, TypeRef{TypeRefEnum, d.Name})
		case *StructDef:
			h.Structs.Set(d.Name, d)
			h.Order = append(h.Order, TypeRef{TypeRefStruct, d.Name})
		case *UnionDef:
			h.Unions.Set(d.Name, d)
			h.Order = append(h.Order, TypeRef{TypeRefUnion, d.Name})
		case *ProgramDef:
			h.Programs.Set(d.Name, d)
		default:
			return nil, fmt.Errorf("krpcgen: unhandled definition type %T", d)
		}
	}
	return h, nil
}

// ResolveType follows NamedType references to their declaring
// definition, recursing through typedef chains (a typedef's target
// can itself be another typedef's name) to the underlying type.
func (h *Handle) ResolveType(t Type) Type {
	named, ok := t.(*NamedType)
	if !ok {
		return t
	}
	if td, ok := h.Typedefs.Get(named.Name); ok {
		return h.ResolveType(td.Type)
	}
	return t
}
