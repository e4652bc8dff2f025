package store

import (
	"context"
	"fmt"
)

// WriteDominatorTree stores rec under a freshly generated run ID and
// returns that ID. rec.ID is ignored. The run and its nodes are written
// in one transaction.
func (s *Store) WriteDominatorTree(ctx context.Context, rec TreeRecord) (string, error) {
	if len(rec.Nodes) == 0 {
		return "", fmt.Errorf("write dominator tree: %s has no nodes", rec.Function)
	}
	runID := s.ids.Generate()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write dominator tree: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, module, function, kind, root, generation)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		runID,
		rec.Module,
		rec.Function,
		string(rec.Kind),
		rec.Root,
		rec.Generation,
	)
	if err != nil {
		return "", fmt.Errorf("write dominator tree: %w", err)
	}

	for i, n := range rec.Nodes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tree_nodes (run_id, position, block, idom)
			VALUES (?, ?, ?, ?)
		`, runID, i, n.Block, n.Idom)
		if err != nil {
			return "", fmt.Errorf("write tree node %s: %w", n.Block, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write dominator tree: %w", err)
	}
	return runID, nil
}
