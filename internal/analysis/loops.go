package analysis

import (
	"cmp"
	"slices"
	"strings"

	"github.com/roach88/tensorir/internal/ir"
)

// Loop is a strongly connected set of blocks that contains a cycle: more
// than one block, or a single block branching to itself.
type Loop struct {
	// Blocks lists the members in function order.
	Blocks []*ir.BasicBlock
}

// Contains reports whether b is a member of the loop.
func (l Loop) Contains(b *ir.BasicBlock) bool { return slices.Contains(l.Blocks, b) }

// String returns the member labels, e.g. "{header, body}".
func (l Loop) String() string {
	names := make([]string, len(l.Blocks))
	for i, b := range l.Blocks {
		names[i] = b.Name()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// LoopAnalysis reports the cycles of a function's control-flow graph.
type LoopAnalysis struct{}

func (LoopAnalysis) Name() string { return "loops" }

func (LoopAnalysis) Run(fn *ir.Function, c *Cache) ([]Loop, error) {
	g, err := Get(c, fn, CFGAnalysis{})
	if err != nil {
		return nil, err
	}
	return g.Loops(), nil
}

// Loops finds the strongly connected components of g that contain a
// cycle. Components are ordered by their first block in function order,
// so the result does not depend on map iteration.
func (g *CFG) Loops() []Loop {
	position := make(map[*ir.BasicBlock]int, len(g.blocks))
	for i, b := range g.blocks {
		position[b] = i
	}

	byPosition := func(a, b *ir.BasicBlock) int { return cmp.Compare(position[a], position[b]) }

	var loops []Loop
	for _, scc := range g.tarjanSCC() {
		if len(scc) == 1 && !slices.Contains(g.succs[scc[0]], scc[0]) {
			continue
		}
		slices.SortFunc(scc, byPosition)
		loops = append(loops, Loop{Blocks: scc})
	}
	slices.SortFunc(loops, func(a, b Loop) int { return byPosition(a.Blocks[0], b.Blocks[0]) })
	return loops
}

// tarjanSCC finds strongly connected components using Tarjan's
// algorithm, visiting roots in function order and successors in edge
// order.
func (g *CFG) tarjanSCC() [][]*ir.BasicBlock {
	var (
		index   = 0
		stack   []*ir.BasicBlock
		indices = make(map[*ir.BasicBlock]int)
		lowlink = make(map[*ir.BasicBlock]int)
		onStack = make(map[*ir.BasicBlock]bool)
		sccs    [][]*ir.BasicBlock
	)

	var strongConnect func(*ir.BasicBlock)
	strongConnect = func(v *ir.BasicBlock) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.succs[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []*ir.BasicBlock
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, b := range g.blocks {
		if _, visited := indices[b]; !visited {
			strongConnect(b)
		}
	}
	return sccs
}
