package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ReadDominatorTree returns the tree stored under runID, nodes in the
// order they were written.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadDominatorTree(ctx context.Context, runID string) (TreeRecord, error) {
	var rec TreeRecord
	var kind string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, module, function, kind, root, generation
		FROM runs
		WHERE id = ?
	`, runID).Scan(&rec.ID, &rec.Module, &rec.Function, &kind, &rec.Root, &rec.Generation)
	if err == sql.ErrNoRows {
		return TreeRecord{}, err
	}
	if err != nil {
		return TreeRecord{}, fmt.Errorf("read run: %w", err)
	}
	rec.Kind = Kind(kind)

	rows, err := s.db.QueryContext(ctx, `
		SELECT block, idom
		FROM tree_nodes
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return TreeRecord{}, fmt.Errorf("query tree nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n TreeNode
		if err := rows.Scan(&n.Block, &n.Idom); err != nil {
			return TreeRecord{}, fmt.Errorf("scan tree node: %w", err)
		}
		rec.Nodes = append(rec.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return TreeRecord{}, fmt.Errorf("iterate tree nodes: %w", err)
	}
	return rec, nil
}

// ListRuns returns the runs stored for module, oldest first. An empty
// module lists every run.
//
// Ordering is deterministic: ORDER BY seq ASC, id COLLATE BINARY ASC.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListRuns(ctx context.Context, module string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, module, function, kind, root, generation
		FROM runs
		WHERE ? = '' OR module = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, module, module)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var kind string
		if err := rows.Scan(&r.ID, &r.Module, &r.Function, &kind, &r.Root, &r.Generation); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Kind = Kind(kind)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
