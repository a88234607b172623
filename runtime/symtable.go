package runtime

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Bindings for variables. Tables of bindings are attached to scopes.
// Scopes are organized in a tree.
//

// ErrUndefined is returned for lookups of names without a binding.
var ErrUndefined = errors.New("undefined variable")

// ErrConstant is returned for assignments to constant bindings.
var ErrConstant = errors.New("cannot assign to constant")

// --- Bindings ---------------------------------------------------

// Binding binds a name to a value. It may be a little surprising this type
// is not called 'Symbol' or 'Variable': grammars consist of symbols, too,
// and a binding may hold the value of a constant.
type Binding struct {
	name  string
	Kind  ValueKind
	Value interface{}
	Const bool // constant bindings may not be re-assigned
}

// ValueKind is the kind of value stored in a binding.
type ValueKind int8

// Kinds of values, as derived by KindOf.
const (
	Undefined ValueKind = iota
	IntegerType
	FloatType
	StringType
	BooleanType
	OtherType
)

func (k ValueKind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case IntegerType:
		return "integer"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case BooleanType:
		return "boolean"
	}
	return "other"
}

// KindOf returns the kind of a value.
func KindOf(v interface{}) ValueKind {
	switch v.(type) {
	case nil:
		return Undefined
	case int, int32, int64:
		return IntegerType
	case float32, float64:
		return FloatType
	case string:
		return StringType
	case bool:
		return BooleanType
	}
	return OtherType
}

// NewBinding creates a new, undefined binding.
func NewBinding(nm string) *Binding {
	return &Binding{name: nm}
}

// Set stores a value into a binding, adjusting its kind.
// Use as
//
//    b := NewBinding("x").Set(int64(1))
//
func (b *Binding) Set(v interface{}) *Binding {
	b.Value = v
	b.Kind = KindOf(v)
	return b
}

// String is a debug Stringer for bindings.
func (b *Binding) String() string {
	return fmt.Sprintf("<binding '%s':%s>", b.Name(), b.Kind)
}

// Name gets the binding's name.
func (b *Binding) Name() string {
	return b.name
}

// === Tables of bindings ====================================================

// Bindings is a table of bindings (map-like semantics).
type Bindings struct {
	table map[string]*Binding
}

// NewBindings creates an empty table.
func NewBindings() *Bindings {
	return &Bindings{
		table: make(map[string]*Binding),
	}
}

// Resolve checks for a binding in the table.
// Returns a binding or nil.
func (t *Bindings) Resolve(name string) *Binding {
	return t.table[name]
}

// ResolveOrDefine finds a binding in the table, inserts a new one if not
// found. Returns the binding and a flag, signalling whether the binding
// has already been present.
//
func (t *Bindings) ResolveOrDefine(name string) (*Binding, bool) {
	if len(name) == 0 {
		return nil, false
	}
	if b := t.Resolve(name); b != nil {
		return b, true
	}
	b, _ := t.Define(name)
	return b, false
}

// Define creates a new binding to store into the table.
// The name may not be empty.
// Overwrites an existing binding with this name, if any.
// Returns the new binding and the previously stored binding (or nil).
//
func (t *Bindings) Define(name string) (*Binding, *Binding) {
	if len(name) == 0 {
		return nil, nil
	}
	b := NewBinding(name)
	old := t.Insert(b)
	return b, old
}

// Insert inserts a pre-created binding.
func (t *Bindings) Insert(b *Binding) *Binding {
	old := t.Resolve(b.name)
	t.table[b.name] = b
	return old
}

// Size counts the bindings in a table.
func (t *Bindings) Size() int {
	return len(t.table)
}

// Each iterates over each binding in the table, in order of names,
// executing a mapper function.
func (t *Bindings) Each(mapper func(string, *Binding)) {
	names := make([]string, 0, len(t.table))
	for k := range t.table {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		mapper(k, t.table[k])
	}
}

// === Scopes ================================================================

// Scope is a named scope, which may contain bindings. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name     string
	Parent   *Scope
	bindings *Bindings
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	return &Scope{
		Name:     nm,
		Parent:   parent,
		bindings: NewBindings(),
	}
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Bindings returns the table of bindings of a scope.
func (s *Scope) Bindings() *Bindings {
	return s.bindings
}

// Define defines a binding in the scope and sets its value. Returns the new
// binding. A binding of the same name in this scope is replaced.
//
func (s *Scope) Define(name string, value interface{}) *Binding {
	b, _ := s.bindings.Define(name)
	return b.Set(value)
}

// Resolve finds a binding. Returns the binding (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the binding was found in.
//
func (s *Scope) Resolve(name string) (*Binding, *Scope) {
	for ; s != nil; s = s.Parent {
		if b := s.bindings.Resolve(name); b != nil {
			return b, s
		}
	}
	return nil, nil
}

// Lookup returns the value bound to name, searching the scope and its
// ancestors. It returns an error wrapping ErrUndefined if no binding exists.
func (s *Scope) Lookup(name string) (interface{}, error) {
	b, _ := s.Resolve(name)
	if b == nil || b.Kind == Undefined {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	return b.Value, nil
}

// Assign sets the value of a variable in this scope, defining it if necessary.
// Assignments to names bound to constants, in this scope or in an ancestor,
// fail with an error wrapping ErrConstant.
//
func (s *Scope) Assign(name string, value interface{}) (*Binding, error) {
	if b, where := s.Resolve(name); b != nil && b.Const {
		return nil, fmt.Errorf("%w: %s (defined in %s)", ErrConstant, name, where.Name)
	}
	b, _ := s.bindings.ResolveOrDefine(name)
	if b == nil {
		return nil, fmt.Errorf("%w: empty name", ErrUndefined)
	}
	tracer().P("scope", s.Name).Debugf("%s := %v", name, value)
	return b.Set(value), nil
}

// ---------------------------------------------------------------------------

// ScopeTree can be treated as a stack during evaluation, thus
// building a tree from scopes which are pushed an popped to/from the stack.
//
type ScopeTree struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeTree) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Root gets the outermost scope.
func (scst *ScopeTree) Root() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access root scope from empty stack")
	}
	return scst.ScopeBase
}

// Globals gets the scope directly above the outermost scope, containing
// global symbols. If there is only one scope, it is the global scope.
func (scst *ScopeTree) Globals() *Scope {
	sc := scst.Current()
	for sc.Parent != nil && sc.Parent != scst.ScopeBase {
		sc = sc.Parent
	}
	return sc
}

// PushNewScope pushes a scope onto the stack of scopes. A scope is constructed,
// including a table for variable bindings.
func (scst *ScopeTree) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the root scope
		scst.ScopeBase = newsc // make new scope anchor
	}
	scst.ScopeTOS = newsc // new scope now TOS
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (scst *ScopeTree) PopScope() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	return sc
}
