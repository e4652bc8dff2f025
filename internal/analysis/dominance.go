package analysis

import (
	"slices"

	"github.com/roach88/tensorir/internal/ir"
)

// DominatorTree maps every block reachable from the root to its immediate
// dominator. The root maps to itself.
//
// Queries about blocks outside the tree (unreachable from the root, or
// from another function) answer false or nil.
type DominatorTree struct {
	root  *ir.BasicBlock
	idom  map[*ir.BasicBlock]*ir.BasicBlock
	order []*ir.BasicBlock // reverse post-order from root
}

// BuildDominatorTree runs the iterative dominator algorithm over g from
// root. Passing a transposed graph and an exit block yields the
// post-dominator tree of that exit.
//
// Nodes are visited in reverse post-order, skipping the root. A node's
// candidate is folded over its predecessors that already have a
// dominator, using NearestCommonDominator; passes repeat until nothing
// changes.
func BuildDominatorTree(g *CFG, root *ir.BasicBlock) (*DominatorTree, error) {
	t := &DominatorTree{
		root:  root,
		idom:  map[*ir.BasicBlock]*ir.BasicBlock{root: root},
		order: g.ReversePostOrder(root),
	}
	for changed := true; changed; {
		changed = false
		for _, n := range t.order[1:] {
			preds := g.preds[n]
			if len(preds) == 0 {
				return nil, ir.MalformedControlFlow(g.fn, "block %s is reachable but has no predecessors", n.Name()).At(n)
			}
			var candidate *ir.BasicBlock
			for _, p := range preds {
				if _, ok := t.idom[p]; !ok {
					continue
				}
				if candidate == nil {
					candidate = p
					continue
				}
				candidate = t.NearestCommonDominator(p, candidate)
			}
			if candidate == nil {
				return nil, ir.MalformedControlFlow(g.fn, "block %s has no processed predecessor", n.Name()).At(n)
			}
			if prev, ok := t.idom[n]; !ok || prev != candidate {
				t.idom[n] = candidate
				changed = true
			}
		}
	}
	return t, nil
}

// Root returns the tree root.
func (t *DominatorTree) Root() *ir.BasicBlock { return t.root }

// Blocks returns the blocks in the tree in reverse post-order.
func (t *DominatorTree) Blocks() []*ir.BasicBlock { return slices.Clone(t.order) }

// Contains reports whether b is in the tree.
func (t *DominatorTree) Contains(b *ir.BasicBlock) bool {
	_, ok := t.idom[b]
	return ok
}

// ImmediateDominator returns the immediate dominator of b. The root is
// its own immediate dominator.
func (t *DominatorTree) ImmediateDominator(b *ir.BasicBlock) (*ir.BasicBlock, bool) {
	d, ok := t.idom[b]
	return d, ok
}

// Dominees returns the blocks immediately dominated by b, in reverse
// post-order.
func (t *DominatorTree) Dominees(b *ir.BasicBlock) []*ir.BasicBlock {
	var out []*ir.BasicBlock
	for _, n := range t.order {
		if n != t.root && t.idom[n] == b {
			out = append(out, n)
		}
	}
	return out
}

// Dominates reports whether every path from the root to b passes
// through a. Every block in the tree dominates itself.
func (t *DominatorTree) Dominates(a, b *ir.BasicBlock) bool {
	if a == b {
		return t.Contains(a)
	}
	return t.ProperlyDominates(a, b)
}

// ProperlyDominates reports whether a dominates b and a != b.
func (t *DominatorTree) ProperlyDominates(a, b *ir.BasicBlock) bool {
	if a == b || !t.Contains(a) || !t.Contains(b) {
		return false
	}
	if a == t.root {
		return true
	}
	for n := t.idom[b]; n != t.root; n = t.idom[n] {
		if n == a {
			return true
		}
	}
	return false
}

// NearestCommonDominator returns the closest block dominating both a and
// b, or nil if either is outside the tree.
func (t *DominatorTree) NearestCommonDominator(a, b *ir.BasicBlock) *ir.BasicBlock {
	if !t.Contains(a) || !t.Contains(b) {
		return nil
	}
	if t.Dominates(a, b) {
		return a
	}
	if t.Dominates(b, a) {
		return b
	}
	ancestors := make(map[*ir.BasicBlock]bool)
	for n := t.idom[a]; n != t.root; n = t.idom[n] {
		ancestors[n] = true
	}
	for n := t.idom[b]; n != t.root; n = t.idom[n] {
		if ancestors[n] {
			return n
		}
	}
	return t.root
}

// DominatesInstruction reports whether a dominates b. Within one block
// that means a comes no later than b.
func (t *DominatorTree) DominatesInstruction(a, b *ir.Instruction) bool {
	return t.instructionDominance(a, b, false)
}

// ProperlyDominatesInstruction reports whether a dominates b and a != b.
func (t *DominatorTree) ProperlyDominatesInstruction(a, b *ir.Instruction) bool {
	return t.instructionDominance(a, b, true)
}

func (t *DominatorTree) instructionDominance(a, b *ir.Instruction, strict bool) bool {
	ba, bb := a.Parent(), b.Parent()
	if ba == nil || bb == nil || !a.ExistsInParent() || !b.ExistsInParent() {
		return false
	}
	if ba != bb {
		return t.ProperlyDominates(ba, bb)
	}
	if !t.Contains(ba) {
		return false
	}
	ia, ib := a.IndexInParent(), b.IndexInParent()
	if strict {
		return ia < ib
	}
	return ia <= ib
}

// ProperlyDominatesUse reports whether the value u refers to is available
// at user. Globals, literals and functions are available everywhere; a
// block argument is available throughout blocks its block dominates; an
// instruction result must properly dominate user.
func (t *DominatorTree) ProperlyDominatesUse(u ir.Use, user *ir.Instruction) bool {
	switch u.Kind() {
	case ir.UseGlobal, ir.UseLiteral, ir.UseFunction:
		return true
	case ir.UseArgument:
		return user.Parent() != nil && t.Dominates(u.Argument().Parent(), user.Parent())
	case ir.UseLocal:
		return t.ProperlyDominatesInstruction(u.Instruction(), user)
	}
	return false
}

// Equal reports whether t and o have the same root and the same
// immediate dominators.
func (t *DominatorTree) Equal(o *DominatorTree) bool {
	if t.root != o.root || len(t.idom) != len(o.idom) {
		return false
	}
	for n, d := range t.idom {
		if o.idom[n] != d {
			return false
		}
	}
	return true
}

// DominanceAnalysis computes the dominator tree rooted at the entry.
type DominanceAnalysis struct{}

func (DominanceAnalysis) Name() string { return "dominance" }

func (DominanceAnalysis) Run(fn *ir.Function, c *Cache) (*DominatorTree, error) {
	premise, err := Get(c, fn, PremiseAnalysis{})
	if err != nil {
		return nil, err
	}
	g, err := Get(c, fn, CFGAnalysis{})
	if err != nil {
		return nil, err
	}
	return BuildDominatorTree(g, premise.Entry)
}
