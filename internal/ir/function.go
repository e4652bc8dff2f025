package ir

import (
	"iter"

	"github.com/roach88/tensorir/internal/adt"
	"github.com/roach88/tensorir/internal/tensor"
)

// Function owns an ordered list of basic blocks. The first block is the
// entry; its arguments are the function's arguments.
type Function struct {
	id     ID
	name   string
	result tensor.Type
	blocks adt.List[*BasicBlock]
	parent *Module

	labels namespace // block labels
	locals namespace // instruction results and block arguments

	generation uint64
}

// NewFunction creates a detached function returning values of type result.
func NewFunction(name string, result tensor.Type) *Function {
	return &Function{
		id:     nextID(),
		name:   name,
		result: result,
		labels: newNamespace("function " + name + " label"),
		locals: newNamespace("function " + name),
	}
}

func (f *Function) ID() ID                  { return f.id }
func (f *Function) Name() string            { return f.name }
func (f *Function) ResultType() tensor.Type { return f.result }

// Parent returns the owning module, or nil when detached.
func (f *Function) Parent() *Module { return f.parent }

// Generation changes whenever the block list or any contained block's
// instruction list is mutated. Cached analyses compare it to decide
// whether they are stale.
func (f *Function) Generation() uint64 { return f.generation }

// Len returns the number of blocks.
func (f *Function) Len() int { return f.blocks.Len() }

// Blocks returns the blocks in order.
func (f *Function) Blocks() iter.Seq[*BasicBlock] { return f.blocks.All() }

// BlockList returns a copy-on-write snapshot of the block list.
func (f *Function) BlockList() *adt.List[*BasicBlock] { return f.blocks.Clone() }

// Block returns the block at index. It panics with IndexOutOfRange unless
// 0 <= index < Len.
func (f *Function) Block(index int) *BasicBlock { return f.blocks.At(index) }

// Entry returns the first block, or nil if the function has none.
func (f *Function) Entry() *BasicBlock {
	if n := f.blocks.Front(); n != nil {
		return n.Value()
	}
	return nil
}

// Arguments returns the entry block's arguments.
func (f *Function) Arguments() []*Argument {
	if e := f.Entry(); e != nil {
		return e.Arguments()
	}
	return nil
}

// Lookup resolves a local name to an instruction result or argument.
func (f *Function) Lookup(name string) (Value, bool) {
	v, ok := f.locals.lookup(name)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// BlockNamed resolves a block label.
func (f *Function) BlockNamed(label string) (*BasicBlock, bool) {
	v, ok := f.labels.lookup(label)
	if !ok {
		return nil, false
	}
	return v.(*BasicBlock), true
}

// Index returns the position of b within the function.
func (f *Function) Index(b *BasicBlock) (int, bool) { return f.blocks.IndexOf(b) }

// Contains reports whether b is in the function.
func (f *Function) Contains(b *BasicBlock) bool { return f.blocks.Contains(b) }

// Append adds b at the end of the function.
func (f *Function) Append(b *BasicBlock) {
	f.adopt(b)
	f.blocks.Append(b)
	f.generation++
}

// Insert places b at index. It panics with IndexOutOfRange unless
// 0 <= index < Len.
func (f *Function) Insert(b *BasicBlock, index int) {
	if index < 0 || index >= f.blocks.Len() {
		f.blocks.NodeAt(index) // raises IndexOutOfRange
	}
	f.adopt(b)
	f.blocks.InsertAt(b, index)
	f.generation++
}

// InsertBefore places b in front of other. It returns an ElementNotFound
// error and leaves the function unchanged if other is absent.
func (f *Function) InsertBefore(b, other *BasicBlock) error {
	return f.insertRelative(b, other, f.blocks.InsertBefore)
}

// InsertAfter places b behind other. Same contract as InsertBefore.
func (f *Function) InsertAfter(b, other *BasicBlock) error {
	return f.insertRelative(b, other, f.blocks.InsertAfter)
}

func (f *Function) insertRelative(b, other *BasicBlock, insert func(v, other *BasicBlock) (*adt.Node[*BasicBlock], error)) error {
	f.adopt(b)
	if _, err := insert(b, other); err != nil {
		f.disown(b)
		return err
	}
	f.generation++
	return nil
}

// Remove detaches b and all its names from the function. It panics with
// NotInParent if b is not in the function.
func (f *Function) Remove(b *BasicBlock) {
	if b.parent != f || !f.blocks.RemoveValue(b) {
		panic(notInParent("basic block", b.name))
	}
	f.disown(b)
	f.generation++
}

// IndexInParent returns the function's position within its module. It
// panics with NotInParent if the function is detached.
func (f *Function) IndexInParent() int {
	if f.parent == nil {
		panic(notInParent("function", f.name))
	}
	idx, ok := f.parent.functions.IndexOf(f)
	if !ok {
		panic(notInParent("function", f.name))
	}
	return idx
}

// ExistsInParent reports whether f's module currently lists it.
func (f *Function) ExistsInParent() bool {
	return f.parent != nil && f.parent.functions.Contains(f)
}

// RemoveFromParent removes f from its module. It panics with NotInParent
// if f is detached.
func (f *Function) RemoveFromParent() {
	if !f.ExistsInParent() {
		panic(notInParent("function", f.name))
	}
	f.parent.Remove(f)
}

// adopt takes ownership of b and registers its label and local names.
// Nothing is registered if any name collides.
func (f *Function) adopt(b *BasicBlock) {
	if b.parent != nil {
		panic(alreadyOwned("basic block", b.name))
	}
	locals := b.locals()
	scratch := newNamespace(f.locals.scope)
	for _, v := range locals {
		name := v.(Named).Name()
		if prev, ok := f.locals.lookup(name); ok && prev != v {
			f.locals.claim(name, v) // raises NameCollision
		}
		scratch.claim(name, v)
	}
	f.labels.claim(b.name, b)
	for _, v := range locals {
		f.locals.claim(v.(Named).Name(), v)
	}
	b.parent = f
}

func (f *Function) disown(b *BasicBlock) {
	for _, v := range b.locals() {
		f.locals.release(v.(Named).Name(), v)
	}
	f.labels.release(b.name, b)
	b.parent = nil
}
