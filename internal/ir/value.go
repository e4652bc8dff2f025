package ir

import "github.com/roach88/tensorir/internal/tensor"

// Scope tells where a value is visible.
type Scope uint8

const (
	ScopeNone Scope = iota
	ScopeLocal
	ScopeGlobal
)

var scopeNames = [...]string{
	ScopeNone:   "none",
	ScopeLocal:  "local",
	ScopeGlobal: "global",
}

// String returns the scope name.
func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Value is anything with a type: literals, instruction results, block
// arguments and declared globals.
type Value interface {
	Type() tensor.Type
	Scope() Scope
}

// Named is implemented by values that carry a name.
type Named interface {
	Name() string
}

// GlobalValue is a module-level tensor, optionally initialized.
type GlobalValue struct {
	typ         tensor.Type
	Initializer *LiteralValue
	Mutable     bool
}

// NewGlobalValue returns a global of type t.
func NewGlobalValue(t tensor.Type, init *LiteralValue, mutable bool) *GlobalValue {
	return &GlobalValue{typ: t, Initializer: init, Mutable: mutable}
}

func (g *GlobalValue) Type() tensor.Type { return g.typ }
func (g *GlobalValue) Scope() Scope      { return ScopeGlobal }

// Placeholder is a module-level input fed by the caller at run time.
type Placeholder struct {
	typ tensor.Type
}

// NewPlaceholder returns a placeholder of type t.
func NewPlaceholder(t tensor.Type) *Placeholder {
	return &Placeholder{typ: t}
}

func (p *Placeholder) Type() tensor.Type { return p.typ }
func (p *Placeholder) Scope() Scope      { return ScopeGlobal }

// Def gives a value a unique name. Its scope is the wrapped value's.
type Def struct {
	id     ID
	name   string
	value  Value
	module *Module
}

// NewDef wraps v under name.
func NewDef(name string, v Value) *Def {
	return &Def{id: nextID(), name: name, value: v}
}

func (d *Def) ID() ID            { return d.id }
func (d *Def) Name() string      { return d.name }
func (d *Def) Value() Value      { return d.value }
func (d *Def) Type() tensor.Type { return d.value.Type() }
func (d *Def) Scope() Scope      { return d.value.Scope() }

// Module returns the declaring module, or nil if undeclared.
func (d *Def) Module() *Module { return d.module }

// Argument is a value passed into a basic block. The arguments of a
// function's entry block are the function's arguments.
type Argument struct {
	id     ID
	name   string
	typ    tensor.Type
	parent *BasicBlock
}

func (a *Argument) ID() ID            { return a.id }
func (a *Argument) Name() string      { return a.name }
func (a *Argument) Type() tensor.Type { return a.typ }
func (a *Argument) Scope() Scope      { return ScopeLocal }

// Parent returns the owning block.
func (a *Argument) Parent() *BasicBlock { return a.parent }
