package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/testutil"
)

func postDominators(t *testing.T, g *testutil.Graph) *PostDominance {
	t.Helper()
	pd, err := Get(quietCache(), g.Fn, PostDominanceAnalysis{})
	require.NoError(t, err)
	return pd
}

func TestPostDominance_Diamond(t *testing.T) {
	g := testutil.Diamond()
	pd := postDominators(t, g)

	require.Equal(t, []string{"D"}, g.Names(pd.Exits()))
	tree, ok := pd.Tree(g.Block("D"))
	require.True(t, ok)
	assertIdoms(t, g, tree, map[string]string{"D": "D", "B": "D", "C": "D", "A": "D"})

	assert.True(t, pd.PostDominates(g.Block("D"), g.Block("D"), g.Block("A")))
	assert.False(t, pd.PostDominates(g.Block("D"), g.Block("B"), g.Block("A")))
	assert.False(t, pd.PostDominates(g.Block("A"), g.Block("A"), g.Block("A")), "A is not an exit")
}

func TestPostDominance_Loop(t *testing.T) {
	g := testutil.Loop()
	pd := postDominators(t, g)

	tree, ok := pd.Tree(g.Block("exit"))
	require.True(t, ok)
	assertIdoms(t, g, tree, map[string]string{
		"d": "exit", "c": "d", "a": "c", "b": "c", "entry": "c",
	})
}

func TestPostDominance_MultipleExits(t *testing.T) {
	g := testutil.NewGraph([]string{"a", "b", "c"}, map[string][]string{"a": {"b", "c"}})
	pd := postDominators(t, g)

	require.Equal(t, []string{"b", "c"}, g.Names(pd.Exits()))

	tb, ok := pd.Tree(g.Block("b"))
	require.True(t, ok)
	assert.True(t, tb.Contains(g.Block("a")))
	assert.False(t, tb.Contains(g.Block("c")), "c does not reach b")
	assertIdoms(t, g, tb, map[string]string{"a": "b"})

	tc, ok := pd.Tree(g.Block("c"))
	require.True(t, ok)
	assertIdoms(t, g, tc, map[string]string{"a": "c"})
}

func TestPostDominance_SingleBlock(t *testing.T) {
	g := testutil.NewGraph([]string{"only"}, nil)
	pd := postDominators(t, g)

	tree, ok := pd.Tree(g.Block("only"))
	require.True(t, ok)
	assert.Equal(t, []string{"only"}, g.Names(tree.Blocks()))
}

func TestPostDominance_UnreachableExit(t *testing.T) {
	g := testutil.NewGraph([]string{"a", "b", "c"}, map[string][]string{"a": {"b"}})

	_, err := Get(quietCache(), g.Fn, PostDominanceAnalysis{})
	require.Error(t, err)
	assert.True(t, ir.IsMalformedControlFlow(err))
	assert.Contains(t, err.Error(), "exit block c has no predecessors")

	var ie *ir.Error
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "f", ie.Function)
	assert.Equal(t, "c", ie.Block)
}
