package adt

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireConsistent checks the list invariants shared by every test.
func requireConsistent[T comparable](t *testing.T, l *List[T]) {
	t.Helper()
	require.NoError(t, l.Validate())
	assert.Equal(t, l.Len() == 0, l.Front() == nil && l.Back() == nil)
	assert.Len(t, l.Values(), l.Len())
}

func TestList_ZeroValue(t *testing.T) {
	var l List[string]
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.IsEmpty())
	assert.Empty(t, l.Values())
	assert.False(t, l.Contains("x"))
	requireConsistent(t, &l)
}

func TestList_AppendOrder(t *testing.T) {
	l := NewList("e0", "e1", "e2")
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"e0", "e1", "e2"}, l.Values())
	assert.Equal(t, "e1", l.At(1))
	requireConsistent(t, l)
}

func TestList_RemoveTailThenAppend(t *testing.T) {
	l := NewList("e0", "e1", "e2")
	l.Remove(l.Back())
	l.Append("new0")
	l.Append("new1")

	assert.Equal(t, []string{"e0", "e1", "new0", "new1"}, l.Values())
	assert.Equal(t, 4, l.Len())
	requireConsistent(t, l)
}

func TestList_RemoveOnlyElement(t *testing.T) {
	l := NewList("only")
	l.Remove(l.Front())
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Front())
	assert.Nil(t, l.Back())
	requireConsistent(t, l)
}

func TestList_RemoveHead(t *testing.T) {
	l := NewList("a", "b", "c")
	l.Remove(l.Front())
	assert.Equal(t, []string{"b", "c"}, l.Values())
	assert.Nil(t, l.Front().Prev())
	requireConsistent(t, l)
}

func TestList_RemoveAt(t *testing.T) {
	l := NewList(1, 2, 3, 4)
	assert.Equal(t, 3, l.RemoveAt(2))
	assert.Equal(t, []int{1, 2, 4}, l.Values())
	requireConsistent(t, l)
}

func TestList_RemoveValue(t *testing.T) {
	l := NewList("a", "b")
	assert.True(t, l.RemoveValue("a"))
	assert.False(t, l.RemoveValue("zzz"))
	assert.Equal(t, []string{"b"}, l.Values())
}

func TestList_InsertAt(t *testing.T) {
	l := NewList("a", "c")
	l.InsertAt("b", 1)
	l.InsertAt("start", 0)
	assert.Equal(t, []string{"start", "a", "b", "c"}, l.Values())
	requireConsistent(t, l)
}

func TestList_InsertAtOutOfRange(t *testing.T) {
	l := NewList("a")
	for _, idx := range []int{-1, 1, 5} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "index %d should panic", idx)
				err, ok := r.(*Error)
				require.True(t, ok)
				assert.True(t, IsIndexOutOfRange(err))
				assert.Equal(t, idx, err.Index)
			}()
			l.InsertAt("x", idx)
		}()
	}
	assert.Equal(t, []string{"a"}, l.Values())
}

func TestList_NodeAtOutOfRange(t *testing.T) {
	l := NewList(1, 2)
	assert.PanicsWithError(t, "INDEX_OUT_OF_RANGE: accepted range is [0, 2) (index=2, count=2)", func() {
		l.NodeAt(2)
	})
}

func TestList_InsertBeforeAfter(t *testing.T) {
	l := NewList("a", "c")

	_, err := l.InsertBefore("b", "c")
	require.NoError(t, err)
	_, err = l.InsertAfter("d", "c")
	require.NoError(t, err)
	_, err = l.InsertBefore("0", "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "a", "b", "c", "d"}, l.Values())
	assert.Equal(t, "d", l.Back().Value())
	requireConsistent(t, l)
}

func TestList_InsertAfterMissingAnchor(t *testing.T) {
	l := NewList("e0", "e1")

	n, err := l.InsertAfter("X", "Y")
	assert.Nil(t, n)
	require.Error(t, err)
	assert.True(t, IsElementNotFound(err))
	assert.Equal(t, []string{"e0", "e1"}, l.Values(), "list must be unmodified")

	_, err = l.InsertBefore("X", "Y")
	assert.True(t, IsElementNotFound(err))
	requireConsistent(t, l)
}

func TestList_IndexOf(t *testing.T) {
	l := NewList("a", "b", "c")
	idx, ok := l.IndexOf("c")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = l.IndexOf("z")
	assert.False(t, ok)
}

func TestList_IterationRestartable(t *testing.T) {
	l := NewList(1, 2, 3)
	seq := l.All()

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{3, 2, 1}, slices.Collect(l.Backward()))
}

func TestList_IterationEarlyExit(t *testing.T) {
	l := NewList(1, 2, 3)
	var seen []int
	for v := range l.All() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}

func TestList_RemoveWhileIterating(t *testing.T) {
	l := NewList(1, 2, 3, 4)
	for v := range l.All() {
		if v%2 == 0 {
			l.RemoveValue(v)
		}
	}
	assert.Equal(t, []int{1, 3}, l.Values())
	requireConsistent(t, l)
}

func TestList_RemoveForeignNodePanics(t *testing.T) {
	a := NewList("x")
	b := NewList("x")
	assert.Panics(t, func() { a.Remove(b.Front()) })
	assert.Equal(t, 1, a.Len())
}

func TestList_CloneSharesUntilMutation(t *testing.T) {
	a := NewList("e0", "e1")
	b := a.Clone()
	assert.True(t, a.IsShared())
	assert.True(t, b.IsShared())
	assert.Equal(t, "e0", b.At(0), "reads do not copy")
	assert.True(t, b.IsShared())

	b.Append("e2")
	assert.False(t, b.IsShared())
	assert.False(t, a.IsShared())
	assert.Equal(t, []string{"e0", "e1"}, a.Values())
	assert.Equal(t, []string{"e0", "e1", "e2"}, b.Values())
	requireConsistent(t, a)
	requireConsistent(t, b)
}

func TestList_CloneIsolationBothDirections(t *testing.T) {
	ops := []struct {
		name string
		fn   func(l *List[int])
	}{
		{"append", func(l *List[int]) { l.Append(9) }},
		{"insertAt", func(l *List[int]) { l.InsertAt(9, 1) }},
		{"insertBefore", func(l *List[int]) { _, _ = l.InsertBefore(9, 3) }},
		{"insertAfter", func(l *List[int]) { _, _ = l.InsertAfter(9, 3) }},
		{"removeAt", func(l *List[int]) { l.RemoveAt(0) }},
		{"removeValue", func(l *List[int]) { l.RemoveValue(2) }},
		{"removeNode", func(l *List[int]) { l.Remove(l.Back()) }},
	}

	for _, op := range ops {
		t.Run(op.name+"/mutate clone", func(t *testing.T) {
			a := NewList(1, 2, 3)
			b := a.Clone()
			op.fn(b)
			assert.Equal(t, []int{1, 2, 3}, a.Values())
			assert.NotEqual(t, a.Values(), b.Values())
			requireConsistent(t, b)
		})
		t.Run(op.name+"/mutate original", func(t *testing.T) {
			a := NewList(1, 2, 3)
			b := a.Clone()
			op.fn(a)
			assert.Equal(t, []int{1, 2, 3}, b.Values())
			requireConsistent(t, a)
		})
	}
}

func TestList_RemoveStaleHandleAfterClone(t *testing.T) {
	a := NewList("a", "b", "c")
	mid := a.NodeAt(1)
	b := a.Clone()

	// a moves to a copy and mid follows it there.
	a.Remove(mid)
	assert.Equal(t, []string{"a", "c"}, a.Values())
	assert.Equal(t, []string{"a", "b", "c"}, b.Values())
	requireConsistent(t, a)
}

func TestList_RemoveHandleAfterEarlierSplit(t *testing.T) {
	a := NewList("a", "b")
	n := a.Append("c")
	b := a.Clone()
	a.Append("d")

	a.Remove(n)
	assert.Equal(t, []string{"a", "b", "d"}, a.Values())
	assert.Equal(t, []string{"a", "b", "c"}, b.Values())
	requireConsistent(t, a)
	requireConsistent(t, b)
}

func TestList_HandleSurvivesRepeatedSplits(t *testing.T) {
	a := NewList(1, 2, 3)
	n := a.NodeAt(1)
	for i := 0; i < 3; i++ {
		_ = a.Clone()
		a.Append(10 + i)
	}

	a.Remove(n)
	assert.Equal(t, []int{1, 3, 10, 11, 12}, a.Values())
	assert.PanicsWithError(t, "FOREIGN_NODE: node does not belong to this list", func() { a.Remove(n) })
}

func TestList_HandleIsNotValidInClone(t *testing.T) {
	a := NewList("a", "b", "c")
	n := a.NodeAt(1)
	b := a.Clone()
	a.Append("d")

	assert.PanicsWithError(t, "FOREIGN_NODE: node does not belong to this list", func() { b.Remove(n) })
	assert.Equal(t, []string{"a", "b", "c"}, b.Values())
	assert.Equal(t, []string{"a", "b", "c", "d"}, a.Values())

	// Still shared: the handle is a's, so b rejects it too.
	c := a.Clone()
	assert.Panics(t, func() { c.Remove(a.Back()) })
	assert.Equal(t, 4, c.Len())
}

func TestList_CloneCopiesBeforeHandingOutNodes(t *testing.T) {
	a := NewList(1, 2, 3)
	b := a.Clone()

	n := b.NodeAt(0)
	assert.False(t, b.IsShared())
	assert.NotSame(t, a.Front(), n)

	b.Remove(n)
	assert.Equal(t, []int{2, 3}, b.Values())
	assert.Equal(t, []int{1, 2, 3}, a.Values())
	assert.Panics(t, func() { a.Remove(n) })
}

func TestList_CloneOfEmpty(t *testing.T) {
	var a List[int]
	b := a.Clone()
	b.Append(1)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestList_RandomOperationSequence(t *testing.T) {
	// A fixed pseudo-random program of mutations keeps a slice model in sync.
	l := &List[int]{}
	var model []int
	seed := uint32(7)
	next := func() int {
		seed = seed*1103515245 + 12345
		return int(seed >> 16)
	}

	for i := 0; i < 500; i++ {
		switch op := next() % 4; {
		case op == 0 || len(model) == 0:
			l.Append(i)
			model = append(model, i)
		case op == 1:
			idx := next() % len(model)
			l.InsertAt(i, idx)
			model = slices.Insert(model, idx, i)
		case op == 2:
			idx := next() % len(model)
			assert.Equal(t, model[idx], l.RemoveAt(idx))
			model = slices.Delete(model, idx, idx+1)
		default:
			clone := l.Clone()
			clone.Append(-1)
			assert.Equal(t, model, l.Values())
		}
		require.Equal(t, len(model), l.Len())
	}
	assert.Equal(t, model, l.Values())
	requireConsistent(t, l)
}
