// Package analysis derives control-flow and dominance facts from an
// ir.Function.
//
// Passes are pure: they read the function and never mutate it. Results
// are memoized in a Cache keyed by function and pass name and are
// recomputed in full once the function's generation moves on. There is
// no incremental update.
//
// Failures are *ir.Error values with code MALFORMED_CONTROL_FLOW and are
// never cached.
package analysis
