// Package builder offers a cursor-based facade over the ir mutators.
//
// A Builder owns one module, remembers the block new instructions go to,
// and hands out names that never collide: the first request for "n"
// yields "n", later ones "n.1", "n.2" and so on. Unnamed values are
// called v0, v1, ... and unnamed blocks BB0, BB1, ...
//
// The suffix counters belong to the builder, not to a scope, so a name
// requested again in another function still gets the next suffix.
//
// With WithExactNames the requested names are used verbatim and a clash
// panics with the ir package's NameCollision error instead.
package builder

import (
	"fmt"
	"strconv"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/tensor"
)

// Builder appends to a module.
type Builder struct {
	module  *ir.Module
	current *ir.BasicBlock

	exact      bool
	variableID int
	blockID    int
	nameIDs    map[string]int
}

// Option configures a Builder.
type Option func(*Builder)

// WithExactNames turns off disambiguation. Generated names for empty
// requests are still handed out.
func WithExactNames() Option {
	return func(b *Builder) {
		b.exact = true
	}
}

// New returns a builder over a fresh module.
func New(moduleName string, opts ...Option) *Builder {
	return For(ir.NewModule(moduleName), opts...)
}

// For returns a builder appending to m.
func For(m *ir.Module, opts ...Option) *Builder {
	b := &Builder{module: m, nameIDs: make(map[string]int)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Module returns the module under construction.
func (b *Builder) Module() *ir.Module { return b.module }

// CurrentBlock returns the insertion block, or nil before the first Move.
func (b *Builder) CurrentBlock() *ir.BasicBlock { return b.current }

// Move sets the insertion block.
func (b *Builder) Move(to *ir.BasicBlock) { b.current = to }

// Declare adds a module-level value under name (generated if empty) and
// returns a use of it.
func (b *Builder) Declare(v ir.Value, name string) ir.Use {
	name = b.disambiguate(b.valueName(name), b.module.Has)
	d := ir.NewDef(name, v)
	b.module.Declare(d)
	return ir.GlobalUse(d)
}

// MakeFunction appends a new function to the module.
func (b *Builder) MakeFunction(name string, result tensor.Type) *ir.Function {
	fn := ir.NewFunction(b.disambiguate(name, b.module.Has), result)
	b.module.Append(fn)
	return fn
}

// MakeBasicBlock appends a new block labelled name (generated if empty)
// to fn. It does not move the cursor.
func (b *Builder) MakeBasicBlock(fn *ir.Function, name string) *ir.BasicBlock {
	if name == "" {
		name = "BB" + strconv.Itoa(b.blockID)
		b.blockID++
	}
	name = b.disambiguate(name, func(n string) bool {
		_, ok := fn.BlockNamed(n)
		return ok
	})
	block := ir.NewBasicBlock(name)
	fn.Append(block)
	return block
}

// MakeArgument adds an argument to block and returns a use of it.
func (b *Builder) MakeArgument(block *ir.BasicBlock, name string, t tensor.Type) ir.Use {
	name = b.disambiguate(b.valueName(name), b.localTaken(block.Parent()))
	return ir.ArgumentUse(block.AddArgument(name, t))
}

// MakeOperation appends a defining instruction to the current block and
// returns a use of its result. It panics if there is no current block.
func (b *Builder) MakeOperation(op ir.Op, name string) ir.Use {
	block := b.block()
	name = b.disambiguate(b.valueName(name), b.localTaken(block.Parent()))
	inst := ir.NewInstruction(name, op)
	block.Append(inst)
	return ir.LocalUse(inst)
}

// Emit appends an instruction without a result, such as a store or a
// terminator, to the current block.
func (b *Builder) Emit(op ir.Op) *ir.Instruction {
	inst := ir.NewInstruction("", op)
	b.block().Append(inst)
	return inst
}

// Branch ends the current block with a jump to target.
func (b *Builder) Branch(target *ir.BasicBlock) *ir.Instruction {
	return b.Emit(ir.Branch{Target: target})
}

// CondBranch ends the current block with a conditional jump.
func (b *Builder) CondBranch(cond ir.Use, then, els *ir.BasicBlock) *ir.Instruction {
	return b.Emit(ir.CondBranch{Condition: cond, Then: then, Else: els})
}

// Return ends the current block, returning value if it is non-nil.
func (b *Builder) Return(value *ir.Use) *ir.Instruction {
	return b.Emit(ir.Return{Value: value})
}

func (b *Builder) block() *ir.BasicBlock {
	if b.current == nil {
		panic("builder: no current block")
	}
	return b.current
}

func (b *Builder) valueName(name string) string {
	if name != "" {
		return name
	}
	name = "v" + strconv.Itoa(b.variableID)
	b.variableID++
	return name
}

func (b *Builder) localTaken(fn *ir.Function) func(string) bool {
	if fn == nil {
		return func(string) bool { return false }
	}
	return func(n string) bool {
		_, ok := fn.Lookup(n)
		return ok
	}
}

// disambiguate returns name the first time it is requested and name.N
// afterwards, skipping candidates the scope already holds.
func (b *Builder) disambiguate(name string, taken func(string) bool) string {
	if b.exact {
		return name
	}
	for {
		candidate := name
		if id, ok := b.nameIDs[name]; ok {
			candidate = fmt.Sprintf("%s.%d", name, id)
			b.nameIDs[name] = id + 1
		} else {
			b.nameIDs[name] = 1
		}
		if !taken(candidate) {
			return candidate
		}
	}
}
