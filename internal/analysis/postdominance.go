package analysis

import (
	"slices"

	"github.com/roach88/tensorir/internal/ir"
)

// PostDominance holds one post-dominator tree per exit block. Combining
// the trees of several exits is left to callers.
type PostDominance struct {
	exits []*ir.BasicBlock
	trees map[*ir.BasicBlock]*DominatorTree
}

// Exits returns the exit blocks in function order.
func (p *PostDominance) Exits() []*ir.BasicBlock {
	return slices.Clone(p.exits)
}

// Tree returns the post-dominator tree rooted at exit.
func (p *PostDominance) Tree(exit *ir.BasicBlock) (*DominatorTree, bool) {
	t, ok := p.trees[exit]
	return t, ok
}

// PostDominates reports whether a post-dominates b with respect to exit:
// every path from b to exit passes through a.
func (p *PostDominance) PostDominates(exit, a, b *ir.BasicBlock) bool {
	t, ok := p.trees[exit]
	return ok && t.Dominates(a, b)
}

// PostDominanceAnalysis builds a dominator tree over the transposed CFG
// for every exit of a function.
//
// An exit that control never reaches from another block is malformed,
// unless it is also the entry.
type PostDominanceAnalysis struct{}

func (PostDominanceAnalysis) Name() string { return "post-dominance" }

func (PostDominanceAnalysis) Run(fn *ir.Function, c *Cache) (*PostDominance, error) {
	premise, err := Get(c, fn, PremiseAnalysis{})
	if err != nil {
		return nil, err
	}
	g, err := Get(c, fn, CFGAnalysis{})
	if err != nil {
		return nil, err
	}
	transposed := g.Transpose()
	pd := &PostDominance{
		exits: premise.Exits,
		trees: make(map[*ir.BasicBlock]*DominatorTree, len(premise.Exits)),
	}
	for _, exit := range premise.Exits {
		if exit != premise.Entry && len(g.preds[exit]) == 0 {
			return nil, ir.MalformedControlFlow(fn, "exit block %s has no predecessors", exit.Name()).At(exit)
		}
		t, err := BuildDominatorTree(transposed, exit)
		if err != nil {
			return nil, err
		}
		pd.trees[exit] = t
	}
	return pd, nil
}
