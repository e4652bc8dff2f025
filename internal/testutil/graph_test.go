package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tensorir/internal/ir"
)

func TestNewGraph_Terminators(t *testing.T) {
	g := Diamond()

	require.Equal(t, 4, g.Fn.Len())
	assert.Equal(t, []string{"B", "C"}, g.Names(g.Block("A").Successors()))
	assert.Equal(t, []string{"D"}, g.Names(g.Block("B").Successors()))
	term, ok := g.Block("D").Terminator()
	require.True(t, ok)
	assert.IsType(t, ir.Return{}, term.Op())
	assert.Equal(t, "m", g.Fn.Parent().Name())
}

func TestNewGraph_TooManyEdges(t *testing.T) {
	assert.PanicsWithValue(t, "block a: too many edges", func() {
		NewGraph([]string{"a", "b"}, map[string][]string{"a": {"b", "b", "b"}})
	})
}
