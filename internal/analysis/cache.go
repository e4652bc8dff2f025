package analysis

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tensorir/internal/ir"
)

// Pass is a structural analysis over one function.
//
// Name identifies the pass in the cache; two passes with the same name
// share an entry. Run may consult the cache for the results it builds on.
type Pass[R any] interface {
	Name() string
	Run(fn *ir.Function, c *Cache) (R, error)
}

// Cache memoizes pass results per function.
//
// An entry records the function's generation when it was computed and is
// dropped on the next lookup once the generation has moved. Failed runs
// are never cached. A Cache is not safe for concurrent use.
type Cache struct {
	logger  *slog.Logger
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	fn   *ir.Function
	pass string
}

type cacheEntry struct {
	generation uint64
	result     any
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger routes cache hit/miss logging to l.
//
// Default: slog.Default()
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = l
	}
}

// NewCache returns an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		logger:  slog.Default(),
		entries: make(map[cacheKey]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the result of p on fn, running p if there is no entry or
// the entry is stale.
func Get[R any](c *Cache, fn *ir.Function, p Pass[R]) (R, error) {
	key := cacheKey{fn: fn, pass: p.Name()}
	if e, ok := c.entries[key]; ok {
		if e.generation == fn.Generation() {
			c.logger.Debug("analysis cache hit", "function", fn.Name(), "pass", key.pass)
			r, ok := e.result.(R)
			if !ok {
				panic(fmt.Sprintf("analysis: pass %q cached %T, want %T", key.pass, e.result, r))
			}
			return r, nil
		}
		c.logger.Debug("analysis cache entry stale",
			"function", fn.Name(),
			"pass", key.pass,
			"cached_generation", e.generation,
			"generation", fn.Generation(),
		)
		delete(c.entries, key)
	}

	gen := fn.Generation()
	r, err := p.Run(fn, c)
	if err != nil {
		c.logger.Debug("analysis failed", "function", fn.Name(), "pass", key.pass, "error", err)
		var zero R
		return zero, err
	}
	if fn.Generation() != gen {
		panic(fmt.Sprintf("analysis: pass %q mutated function %q", key.pass, fn.Name()))
	}
	c.entries[key] = cacheEntry{generation: gen, result: r}
	c.logger.Debug("analysis computed", "function", fn.Name(), "pass", key.pass, "generation", gen)
	return r, nil
}

// Invalidate drops every entry for fn.
func (c *Cache) Invalidate(fn *ir.Function) {
	for key := range c.entries {
		if key.fn == fn {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of entries, stale ones included.
func (c *Cache) Len() int { return len(c.entries) }
