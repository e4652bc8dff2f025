package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tensorir/internal/analysis"
)

func TestDominanceRecord(t *testing.T) {
	fn := diamond()
	tree, err := analysis.Get(analysis.NewCache(), fn, analysis.DominanceAnalysis{})
	require.NoError(t, err)

	rec := DominanceRecord(fn, tree)
	assert.Equal(t, "m", rec.Module)
	assert.Equal(t, "f", rec.Function)
	assert.Equal(t, KindDominance, rec.Kind)
	assert.Equal(t, "A", rec.Root)
	assert.Equal(t, fn.Generation(), rec.Generation)
	assert.Equal(t, []TreeNode{
		{Block: "A", Idom: "A"},
		{Block: "C", Idom: "A"},
		{Block: "B", Idom: "A"},
		{Block: "D", Idom: "A"},
	}, rec.Nodes)
}

func TestWriteReadDominatorTree(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, "run-1")
	fn := diamond()
	tree, err := analysis.Get(analysis.NewCache(), fn, analysis.DominanceAnalysis{})
	require.NoError(t, err)
	rec := DominanceRecord(fn, tree)

	id, err := s.WriteDominatorTree(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)

	got, err := s.ReadDominatorTree(ctx, id)
	require.NoError(t, err)
	rec.ID = id
	assert.Equal(t, rec, got)

	idom, ok := got.Idom("D")
	require.True(t, ok)
	assert.Equal(t, "A", idom)
	_, ok = got.Idom("Z")
	assert.False(t, ok)
}

func TestWriteDominatorTree_DefaultIDsAreUUIDv7(t *testing.T) {
	s := createTestStore(t)
	fn := diamond()
	tree, err := analysis.Get(analysis.NewCache(), fn, analysis.DominanceAnalysis{})
	require.NoError(t, err)

	id, err := s.WriteDominatorTree(context.Background(), DominanceRecord(fn, tree))
	require.NoError(t, err)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestWriteDominatorTree_Rejects(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, "a", "b")

	_, err := s.WriteDominatorTree(ctx, TreeRecord{Run: Run{Function: "f", Kind: KindDominance}})
	assert.Error(t, err, "empty tree")

	bad := TreeRecord{
		Run:   Run{Module: "m", Function: "f", Kind: Kind("nonsense"), Root: "A"},
		Nodes: []TreeNode{{Block: "A", Idom: "A"}},
	}
	_, err = s.WriteDominatorTree(ctx, bad)
	assert.Error(t, err, "kind is checked")

	dup := TreeRecord{
		Run:   Run{Module: "m", Function: "f", Kind: KindDominance, Root: "A"},
		Nodes: []TreeNode{{Block: "A", Idom: "A"}, {Block: "A", Idom: "A"}},
	}
	_, err = s.WriteDominatorTree(ctx, dup)
	assert.Error(t, err, "duplicate block")

	runs, err := s.ListRuns(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, runs, "failed writes leave nothing behind")
}

func TestReadDominatorTree_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadDominatorTree(context.Background(), "missing")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestListRuns_Ordering(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, "z-first", "a-second", "m-third")
	fn := diamond()
	cache := analysis.NewCache()
	tree, err := analysis.Get(cache, fn, analysis.DominanceAnalysis{})
	require.NoError(t, err)
	pd, err := analysis.Get(cache, fn, analysis.PostDominanceAnalysis{})
	require.NoError(t, err)

	_, err = s.WriteDominatorTree(ctx, DominanceRecord(fn, tree))
	require.NoError(t, err)
	posts := PostDominanceRecords(fn, pd)
	require.Len(t, posts, 1)
	assert.Equal(t, "D", posts[0].Root)
	_, err = s.WriteDominatorTree(ctx, posts[0])
	require.NoError(t, err)

	other := DominanceRecord(fn, tree)
	other.Module = "other"
	_, err = s.WriteDominatorTree(ctx, other)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, "m")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "z-first", runs[0].ID, "insertion order, not ID order")
	assert.Equal(t, KindPostDominance, runs[1].Kind)

	all, err := s.ListRuns(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := s.ListRuns(ctx, "absent")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.PanicsWithValue(t, "FixedGenerator: all ids exhausted", func() { g.Generate() })
}
