package store

import (
	"github.com/roach88/tensorir/internal/analysis"
	"github.com/roach88/tensorir/internal/ir"
)

// Kind tells dominator and post-dominator trees apart.
type Kind string

const (
	KindDominance     Kind = "dominance"
	KindPostDominance Kind = "post-dominance"
)

// Run identifies one stored tree.
type Run struct {
	ID         string `json:"id"`
	Module     string `json:"module"`
	Function   string `json:"function"`
	Kind       Kind   `json:"kind"`
	Root       string `json:"root"`
	Generation uint64 `json:"generation"`
}

// TreeNode is one block and its immediate dominator. The root is its
// own immediate dominator.
type TreeNode struct {
	Block string `json:"block"`
	Idom  string `json:"idom"`
}

// TreeRecord is a dominator tree flattened to block labels. Nodes are in
// reverse post-order from the root.
type TreeRecord struct {
	Run
	Nodes []TreeNode `json:"nodes"`
}

// Idom returns the immediate dominator recorded for block.
func (r TreeRecord) Idom(block string) (string, bool) {
	for _, n := range r.Nodes {
		if n.Block == block {
			return n.Idom, true
		}
	}
	return "", false
}

// DominanceRecord flattens the dominator tree of fn.
func DominanceRecord(fn *ir.Function, t *analysis.DominatorTree) TreeRecord {
	return newRecord(fn, KindDominance, t)
}

// PostDominanceRecords flattens every per-exit post-dominator tree of fn,
// in exit order.
func PostDominanceRecords(fn *ir.Function, pd *analysis.PostDominance) []TreeRecord {
	exits := pd.Exits()
	records := make([]TreeRecord, 0, len(exits))
	for _, exit := range exits {
		if t, ok := pd.Tree(exit); ok {
			records = append(records, newRecord(fn, KindPostDominance, t))
		}
	}
	return records
}

func newRecord(fn *ir.Function, kind Kind, t *analysis.DominatorTree) TreeRecord {
	r := TreeRecord{Run: Run{
		Function:   fn.Name(),
		Kind:       kind,
		Root:       t.Root().Name(),
		Generation: fn.Generation(),
	}}
	if m := fn.Parent(); m != nil {
		r.Module = m.Name()
	}
	for _, b := range t.Blocks() {
		idom, _ := t.ImmediateDominator(b)
		r.Nodes = append(r.Nodes, TreeNode{Block: b.Name(), Idom: idom.Name()})
	}
	return r
}
