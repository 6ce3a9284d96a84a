package krpcgen

// Namespace tracks the two identifier spaces RPCL declarations share:
// type names (typedef/enum/struct/union) and value names (const and
// enum member identifiers, which share a single flat space — an enum
// member can't collide with a const, or with another enum's member,
// even across different enums).
type Namespace struct {
	types  map[string]Range
	idents map[string]Range
}

// NewNamespace returns an empty Namespace.
func NewNamespace() *Namespace {
	return &Namespace{types: make(map[string]Range), idents: make(map[string]Range)}
}

// DeclareType registers name in the type namespace, failing with
// ErrTypeRedefined if it's already taken.
func (n *Namespace) DeclareType(name string, rg Range) error {
	if _, ok := n.types[name]; ok {
		return newParseError(ErrTypeRedefined, name, rg)
	}
	n.types[name] = rg
	return nil
}

// DeclareIdent registers name in the value namespace, failing with
// ErrIdentifierRedefined if it's already taken.
func (n *Namespace) DeclareIdent(name string, rg Range) error {
	if _, ok := n.idents[name]; ok {
		return newParseError(ErrIdentifierRedefined, name, rg)
	}
	n.idents[name] = rg
	return nil
}

// HasType reports whether name is a declared type.
func (n *Namespace) HasType(name string) bool {
	_, ok := n.types[name]
	return ok
}

// HasIdent reports whether name is a declared const or enum member.
func (n *Namespace) HasIdent(name string) bool {
	_, ok := n.idents[name]
	return ok
}

// pendingTypes is a single-slot tracker for the struct or union
// currently being parsed: while its body is open, its own name may
// only be referenced through a pointer field (a direct, non-pointer
// self-reference can't have a known size in C). RPCL bodies never
// nest, so one slot — not a stack — is enough.
type pendingTypes struct {
	name   string
	active bool
}

func (p *pendingTypes) enter(name string) {
	p.name = name
	p.active = true
}

func (p *pendingTypes) exit() {
	p.active = false
	p.name = ""
}

func (p *pendingTypes) isPending(name string) bool {
	return p.active && p.name == name
}

// numberRegistry enforces the three numbering invariants a program
// block must satisfy: program numbers are globally unique, version
// numbers are unique within a program, and procedure numbers are
// unique within a version.
type numberRegistry struct {
	programs   map[int64]Range
	versions   map[int64]map[int64]Range
	procedures map[int64]map[int64]map[int64]Range
}

func newNumberRegistry() *numberRegistry {
	return &numberRegistry{
		programs:   make(map[int64]Range),
		versions:   make(map[int64]map[int64]Range),
		procedures: make(map[int64]map[int64]map[int64]Range),
	}
}

func (r *numberRegistry) declareProgram(num int64, rg Range) error {
	if _, ok := r.programs[num]; ok {
		return newParseError(ErrProgramNumberReassigned, formatInt64(num), rg)
	}
	r.programs[num] = rg
	r.versions[num] = make(map[int64]Range)
	r.procedures[num] = make(map[int64]map[int64]Range)
	return nil
}

func (r *numberRegistry) declareVersion(prog, ver int64, rg Range) error {
	if _, ok := r.versions[prog][ver]; ok {
		return newParseError(ErrVersionNumberReassigned, formatInt64(ver), rg)
	}
	r.versions[prog][ver] = rg
	r.procedures[prog][ver] = make(map[int64]Range)
	return nil
}

func (r *numberRegistry) declareProcedure(prog, ver, proc int64, rg Range) error {
	if _, ok := r.procedures[prog][ver][proc]; ok {
		return newParseError(ErrProcedureNumberReassigned, formatInt64(proc), rg)
	}
	r.procedures[prog][ver][proc] = rg
	return nil
}

func formatInt64(v int64) string {
	return NumberValue{Value: v}.String()
}
