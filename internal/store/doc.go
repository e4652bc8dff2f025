// Package store provides SQLite-backed storage for analysis snapshots.
//
// A snapshot is one dominator or post-dominator tree, flattened to block
// labels so it outlives the in-memory IR it was computed from:
//   - runs: one row per tree, keyed by a UUIDv7 run ID
//   - tree_nodes: (block, immediate dominator) pairs in reverse post-order
//
// # Deterministic Query Results
//
// Runs are listed by insertion sequence, then ID: ORDER BY seq ASC,
// id COLLATE BINARY ASC. Nodes come back in the order they were written.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
