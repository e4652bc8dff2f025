package analysis

import (
	"iter"
	"slices"

	"github.com/roach88/tensorir/internal/ir"
)

// Order selects a depth-first traversal order.
type Order uint8

const (
	PreOrder Order = iota
	PostOrder
)

// CFG is the block-level control-flow graph of one function.
//
// Edges come from block terminators in discovery order: blocks in
// function order, successors in terminator order. Repeated edges between
// the same pair of blocks are collapsed. A CFG is immutable.
type CFG struct {
	fn         *ir.Function
	blocks     []*ir.BasicBlock
	succs      map[*ir.BasicBlock][]*ir.BasicBlock
	preds      map[*ir.BasicBlock][]*ir.BasicBlock
	transposed bool
}

// CFGAnalysis builds the control-flow graph of a function.
type CFGAnalysis struct{}

func (CFGAnalysis) Name() string { return "cfg" }

func (CFGAnalysis) Run(fn *ir.Function, _ *Cache) (*CFG, error) {
	return BuildCFG(fn)
}

// BuildCFG derives the control-flow graph of fn. A branch to a block that
// fn does not contain is malformed.
func BuildCFG(fn *ir.Function) (*CFG, error) {
	g := &CFG{
		fn:    fn,
		succs: make(map[*ir.BasicBlock][]*ir.BasicBlock),
		preds: make(map[*ir.BasicBlock][]*ir.BasicBlock),
	}
	for b := range fn.Blocks() {
		g.blocks = append(g.blocks, b)
		for _, s := range b.Successors() {
			if s.Parent() != fn {
				return nil, ir.MalformedControlFlow(fn, "block %s branches to %s outside the function", b.Name(), s.Name()).At(b)
			}
			if slices.Contains(g.succs[b], s) {
				continue
			}
			g.succs[b] = append(g.succs[b], s)
			g.preds[s] = append(g.preds[s], b)
		}
	}
	return g, nil
}

// Function returns the function the graph was built from.
func (g *CFG) Function() *ir.Function { return g.fn }

// Blocks returns every block in function order, reachable or not.
func (g *CFG) Blocks() []*ir.BasicBlock { return slices.Clone(g.blocks) }

// IsTransposed reports whether edges point against control flow.
func (g *CFG) IsTransposed() bool { return g.transposed }

// Successors returns the blocks b has edges to.
func (g *CFG) Successors(b *ir.BasicBlock) []*ir.BasicBlock { return slices.Clone(g.succs[b]) }

// Predecessors returns the blocks with edges to b.
func (g *CFG) Predecessors(b *ir.BasicBlock) []*ir.BasicBlock { return slices.Clone(g.preds[b]) }

// Transpose returns the graph with every edge reversed.
func (g *CFG) Transpose() *CFG {
	return &CFG{
		fn:         g.fn,
		blocks:     g.blocks,
		succs:      g.preds,
		preds:      g.succs,
		transposed: !g.transposed,
	}
}

// Traversed yields the blocks reachable from start, depth first, each
// once. Children are visited in successor order. The sequence is lazy
// and can be ranged over more than once.
func (g *CFG) Traversed(start *ir.BasicBlock, order Order) iter.Seq[*ir.BasicBlock] {
	return func(yield func(*ir.BasicBlock) bool) {
		type frame struct {
			block *ir.BasicBlock
			next  int
		}
		visited := map[*ir.BasicBlock]bool{start: true}
		if order == PreOrder && !yield(start) {
			return
		}
		stack := []frame{{block: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := g.succs[top.block]
			if top.next < len(succs) {
				s := succs[top.next]
				top.next++
				if visited[s] {
					continue
				}
				visited[s] = true
				if order == PreOrder && !yield(s) {
					return
				}
				stack = append(stack, frame{block: s})
				continue
			}
			b := top.block
			stack = stack[:len(stack)-1]
			if order == PostOrder && !yield(b) {
				return
			}
		}
	}
}

// PostOrder returns the blocks reachable from start in post-order.
func (g *CFG) PostOrder(start *ir.BasicBlock) []*ir.BasicBlock {
	return slices.Collect(g.Traversed(start, PostOrder))
}

// ReversePostOrder returns the blocks reachable from start in reverse
// post-order. start comes first.
func (g *CFG) ReversePostOrder(start *ir.BasicBlock) []*ir.BasicBlock {
	order := g.PostOrder(start)
	slices.Reverse(order)
	return order
}
