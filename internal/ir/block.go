package ir

import (
	"iter"
	"slices"

	"github.com/roach88/tensorir/internal/adt"
	"github.com/roach88/tensorir/internal/tensor"
)

// BasicBlock owns an ordered list of instructions and the arguments
// passed into it. Control enters at the top and leaves through the
// terminator, if any, at the bottom.
type BasicBlock struct {
	id     ID
	name   string
	args   []*Argument
	insts  adt.List[*Instruction]
	parent *Function
}

// NewBasicBlock creates a detached block labelled name.
func NewBasicBlock(name string) *BasicBlock {
	return &BasicBlock{id: nextID(), name: name}
}

func (b *BasicBlock) ID() ID       { return b.id }
func (b *BasicBlock) Name() string { return b.name }

// Parent returns the owning function, or nil when detached.
func (b *BasicBlock) Parent() *Function { return b.parent }

// String returns the block label.
func (b *BasicBlock) String() string { return b.name }

// Arguments returns the block's arguments in declaration order.
func (b *BasicBlock) Arguments() []*Argument { return slices.Clone(b.args) }

// AddArgument declares a new block argument. The name must be unique
// within the enclosing function.
func (b *BasicBlock) AddArgument(name string, t tensor.Type) *Argument {
	a := &Argument{id: nextID(), name: name, typ: t}
	b.claimLocal(name, a)
	a.parent = b
	b.args = append(b.args, a)
	b.touch()
	return a
}

// Len returns the number of instructions.
func (b *BasicBlock) Len() int { return b.insts.Len() }

// Instructions returns the instructions in order.
func (b *BasicBlock) Instructions() iter.Seq[*Instruction] { return b.insts.All() }

// InstructionList returns a copy-on-write snapshot of the instruction
// list. Mutating the snapshot never affects the block.
func (b *BasicBlock) InstructionList() *adt.List[*Instruction] { return b.insts.Clone() }

// Instruction returns the instruction at index. It panics with
// IndexOutOfRange unless 0 <= index < Len.
func (b *BasicBlock) Instruction(index int) *Instruction { return b.insts.At(index) }

// Terminator returns the last instruction if it is a terminator.
func (b *BasicBlock) Terminator() (*Instruction, bool) {
	last := b.insts.Back()
	if last == nil || !last.Value().IsTerminator() {
		return nil, false
	}
	return last.Value(), true
}

// Successors returns the targets of the block's terminator.
func (b *BasicBlock) Successors() []*BasicBlock {
	if t, ok := b.Terminator(); ok {
		return t.Successors()
	}
	return nil
}

// Index returns the position of inst within the block.
func (b *BasicBlock) Index(inst *Instruction) (int, bool) { return b.insts.IndexOf(inst) }

// Contains reports whether inst is in the block.
func (b *BasicBlock) Contains(inst *Instruction) bool { return b.insts.Contains(inst) }

// Append adds inst at the end of the block.
func (b *BasicBlock) Append(inst *Instruction) {
	b.adopt(inst)
	b.insts.Append(inst)
	b.touch()
}

// Insert places inst at index, shifting later instructions back. It
// panics with IndexOutOfRange unless 0 <= index < Len.
func (b *BasicBlock) Insert(inst *Instruction, index int) {
	if index < 0 || index >= b.insts.Len() {
		b.insts.NodeAt(index) // raises IndexOutOfRange
	}
	b.adopt(inst)
	b.insts.InsertAt(inst, index)
	b.touch()
}

// InsertBefore places inst in front of other. It returns an
// ElementNotFound error and leaves the block unchanged if other is not
// in the block.
func (b *BasicBlock) InsertBefore(inst, other *Instruction) error {
	return b.insertRelative(inst, other, b.insts.InsertBefore)
}

// InsertAfter places inst behind other. Same contract as InsertBefore.
func (b *BasicBlock) InsertAfter(inst, other *Instruction) error {
	return b.insertRelative(inst, other, b.insts.InsertAfter)
}

func (b *BasicBlock) insertRelative(inst, other *Instruction, insert func(v, other *Instruction) (*adt.Node[*Instruction], error)) error {
	b.adopt(inst)
	if _, err := insert(inst, other); err != nil {
		b.disown(inst)
		return err
	}
	b.touch()
	return nil
}

// Remove detaches inst from the block. It panics with NotInParent if
// inst is not in the block.
func (b *BasicBlock) Remove(inst *Instruction) {
	if inst.parent != b || !b.insts.RemoveValue(inst) {
		panic(notInParent("instruction", inst.label()))
	}
	b.disown(inst)
	b.touch()
}

// IndexInParent returns the block's position within its function. It
// panics with NotInParent if the block is detached.
func (b *BasicBlock) IndexInParent() int {
	if b.parent == nil {
		panic(notInParent("basic block", b.name))
	}
	idx, ok := b.parent.Index(b)
	if !ok {
		panic(notInParent("basic block", b.name))
	}
	return idx
}

// ExistsInParent reports whether b's parent currently lists it.
func (b *BasicBlock) ExistsInParent() bool {
	return b.parent != nil && b.parent.Contains(b)
}

// RemoveFromParent removes b from its function. It panics with
// NotInParent if b is detached.
func (b *BasicBlock) RemoveFromParent() {
	if !b.ExistsInParent() {
		panic(notInParent("basic block", b.name))
	}
	b.parent.Remove(b)
}

// adopt claims inst for b: checks ownership and name uniqueness and sets
// the back-reference.
func (b *BasicBlock) adopt(inst *Instruction) {
	if inst.parent != nil {
		panic(alreadyOwned("instruction", inst.label()))
	}
	if inst.result {
		b.claimLocal(inst.name, inst)
	}
	inst.parent = b
}

func (b *BasicBlock) disown(inst *Instruction) {
	if inst.result && b.parent != nil {
		b.parent.locals.release(inst.name, inst)
	}
	inst.parent = nil
}

// claimLocal records a local name. Attached blocks use the function's
// namespace; detached blocks only check their own contents.
func (b *BasicBlock) claimLocal(name string, owner any) {
	if b.parent != nil {
		b.parent.locals.claim(name, owner)
		return
	}
	scratch := newNamespace("block " + b.name)
	for _, v := range b.locals() {
		scratch.claim(v.(Named).Name(), v)
	}
	scratch.claim(name, owner)
}

// locals returns the named values defined by b: arguments then results.
func (b *BasicBlock) locals() []Value {
	out := make([]Value, 0, len(b.args)+b.insts.Len())
	for _, a := range b.args {
		out = append(out, a)
	}
	for inst := range b.insts.All() {
		if inst.result {
			out = append(out, inst)
		}
	}
	return out
}

func (b *BasicBlock) touch() {
	if b.parent != nil {
		b.parent.generation++
	}
}
