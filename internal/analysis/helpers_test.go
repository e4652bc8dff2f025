package analysis

import (
	"io"
	"log/slog"

	"github.com/roach88/tensorir/internal/ir"
	"github.com/roach88/tensorir/internal/tensor"
)

var scalar = tensor.Scalar(tensor.Float32)

func quietCache() *Cache {
	return NewCache(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// countingPass wraps a pass and counts how often it runs.
type countingPass[R any] struct {
	inner Pass[R]
	runs  int
}

func (p *countingPass[R]) Name() string { return p.inner.Name() }

func (p *countingPass[R]) Run(fn *ir.Function, c *Cache) (R, error) {
	p.runs++
	return p.inner.Run(fn, c)
}
