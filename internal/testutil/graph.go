// Package testutil builds control-flow fixtures for tests.
package testutil

import (
	"fmt"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/tensor"
)

// Graph is a function whose control flow is given by an edge list.
type Graph struct {
	Fn     *ir.Function
	blocks map[string]*ir.BasicBlock
}

// NewGraph creates function f in module m with one block per name, in
// order. A block with no edges returns, one edge branches, two edges
// branch conditionally on a constant.
func NewGraph(order []string, edges map[string][]string) *Graph {
	m := ir.NewModule("m")
	g := &Graph{Fn: ir.NewFunction("f", tensor.Scalar(tensor.Float32)), blocks: make(map[string]*ir.BasicBlock)}
	m.Append(g.Fn)
	for _, name := range order {
		b := ir.NewBasicBlock(name)
		g.Fn.Append(b)
		g.blocks[name] = b
	}
	cond := ir.LiteralUse(ir.NewLiteral(tensor.Scalar(tensor.Bool), ir.ScalarLiteral{Value: ir.Bool(true)}))
	for _, name := range order {
		b := g.blocks[name]
		targets := edges[name]
		switch len(targets) {
		case 0:
			b.Append(ir.NewInstruction("", ir.Return{}))
		case 1:
			b.Append(ir.NewInstruction("", ir.Branch{Target: g.blocks[targets[0]]}))
		case 2:
			b.Append(ir.NewInstruction("", ir.CondBranch{
				Condition: cond,
				Then:      g.blocks[targets[0]],
				Else:      g.blocks[targets[1]],
			}))
		default:
			panic(fmt.Sprintf("block %s: too many edges", name))
		}
	}
	return g
}

// Block returns the block labelled name.
func (g *Graph) Block(name string) *ir.BasicBlock { return g.blocks[name] }

// Names maps blocks to their labels.
func (g *Graph) Names(blocks []*ir.BasicBlock) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Name()
	}
	return out
}

// Diamond is A -> B, A -> C, B -> D, C -> D.
func Diamond() *Graph {
	return NewGraph([]string{"A", "B", "C", "D"}, map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
	})
}

// Loop has a reducible loop c <-> d between two forward regions.
func Loop() *Graph {
	return NewGraph([]string{"entry", "a", "b", "c", "d", "exit"}, map[string][]string{
		"entry": {"a", "b"},
		"a":     {"c"},
		"b":     {"c"},
		"c":     {"d"},
		"d":     {"c", "exit"},
	})
}
