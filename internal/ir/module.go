package ir

import (
	"fmt"
	"iter"

	"github.com/roach88/tensorir/internal/adt"
)

// Module is the top-level container of global definitions and functions.
// Globals and functions share one namespace.
type Module struct {
	name      string
	globals   adt.List[*Def]
	functions adt.List[*Function]
	symbols   namespace
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{name: name, symbols: newNamespace("module " + name)}
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Globals returns the declared globals in declaration order.
func (m *Module) Globals() iter.Seq[*Def] { return m.globals.All() }

// Functions returns the functions in order.
func (m *Module) Functions() iter.Seq[*Function] { return m.functions.All() }

// GlobalCount returns the number of declared globals.
func (m *Module) GlobalCount() int { return m.globals.Len() }

// FunctionCount returns the number of functions.
func (m *Module) FunctionCount() int { return m.functions.Len() }

// Declare adds a global definition. d must wrap a global-scoped value and
// must not already belong to a module.
func (m *Module) Declare(d *Def) {
	if d.module != nil {
		panic(alreadyOwned("global", d.name))
	}
	if d.Scope() != ScopeGlobal {
		panic(&Error{
			Code:    ErrCodeInvalidOperand,
			Message: fmt.Sprintf("global %q wraps a %s value", d.name, d.Scope()),
			Name:    d.name,
		})
	}
	m.symbols.claim(d.name, d)
	m.globals.Append(d)
	d.module = m
}

// Undeclare removes a global definition. It panics with NotInParent if d
// is not declared in m.
func (m *Module) Undeclare(d *Def) {
	if d.module != m || !m.globals.RemoveValue(d) {
		panic(notInParent("global", d.name))
	}
	m.symbols.release(d.name, d)
	d.module = nil
}

// Global resolves a global by name.
func (m *Module) Global(name string) (*Def, bool) {
	d, ok := m.symbols.lookup(name)
	if !ok {
		return nil, false
	}
	def, ok := d.(*Def)
	return def, ok
}

// Function resolves a function by name.
func (m *Module) Function(name string) (*Function, bool) {
	f, ok := m.symbols.lookup(name)
	if !ok {
		return nil, false
	}
	fn, ok := f.(*Function)
	return fn, ok
}

// Has reports whether name is taken by a global or a function.
func (m *Module) Has(name string) bool { return m.symbols.has(name) }

// Append adds fn at the end of the module.
func (m *Module) Append(fn *Function) {
	if fn.parent != nil {
		panic(alreadyOwned("function", fn.name))
	}
	m.symbols.claim(fn.name, fn)
	m.functions.Append(fn)
	fn.parent = m
}

// Index returns the position of fn within the module.
func (m *Module) Index(fn *Function) (int, bool) { return m.functions.IndexOf(fn) }

// Contains reports whether fn is in the module.
func (m *Module) Contains(fn *Function) bool { return m.functions.Contains(fn) }

// Remove detaches fn. It panics with NotInParent if fn is not in m.
func (m *Module) Remove(fn *Function) {
	if fn.parent != m || !m.functions.RemoveValue(fn) {
		panic(notInParent("function", fn.name))
	}
	m.symbols.release(fn.name, fn)
	fn.parent = nil
}
