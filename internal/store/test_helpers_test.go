package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/testutil"
)

// createTestStore opens a fresh database under t.TempDir with
// predictable run IDs.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	var opts []Option
	if len(ids) > 0 {
		opts = append(opts, WithIDGenerator(NewFixedGenerator(ids...)))
	}
	s, err := Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// diamond returns function f of module m: A -> {B, C} -> D.
func diamond() *ir.Function { return testutil.Diamond().Fn }
