package analysis

import (
	"github.com/roach88/tensorir/internal/ir"
)

// Premise is the entry and exit structure of a function.
type Premise struct {
	// Entry is the first block.
	Entry *ir.BasicBlock

	// Exits are the blocks terminated by a return, in function order.
	Exits []*ir.BasicBlock
}

// PremiseAnalysis finds a function's entry and exits.
//
// A function without blocks or without a returning block is malformed.
type PremiseAnalysis struct{}

func (PremiseAnalysis) Name() string { return "premise" }

func (PremiseAnalysis) Run(fn *ir.Function, _ *Cache) (*Premise, error) {
	entry := fn.Entry()
	if entry == nil {
		return nil, ir.MalformedControlFlow(fn, "function has no entry block")
	}
	p := &Premise{Entry: entry}
	for b := range fn.Blocks() {
		if t, ok := b.Terminator(); ok {
			if _, ret := t.Op().(ir.Return); ret {
				p.Exits = append(p.Exits, b)
			}
		}
	}
	if len(p.Exits) == 0 {
		return nil, ir.MalformedControlFlow(fn, "function has no exit block")
	}
	return p, nil
}
