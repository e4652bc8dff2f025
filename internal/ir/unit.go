package ir

// Unit is a graph node held in its parent's ordered list.
//
// IndexInParent and RemoveFromParent panic with NotInParent when the
// back-reference is absent or stale; ExistsInParent is the non-panicking
// check.
type Unit[P any] interface {
	ID() ID
	Parent() P
	IndexInParent() int
	ExistsInParent() bool
	RemoveFromParent()
}

var (
	_ Unit[*BasicBlock] = (*Instruction)(nil)
	_ Unit[*Function]   = (*BasicBlock)(nil)
	_ Unit[*Module]     = (*Function)(nil)
)

// Every value kind.
var (
	_ Value = (*Instruction)(nil)
	_ Value = (*Argument)(nil)
	_ Value = (*Def)(nil)
	_ Value = (*LiteralValue)(nil)
	_ Value = (*GlobalValue)(nil)
	_ Value = (*Placeholder)(nil)
)
