package systolic

import (
	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
)

// Option configures a Container.
type Option func(*Container)

// WithCells sets the chain, head first.
func WithCells(cells []*cell.Cell) Option {
	return func(c *Container) { c.cells = cells }
}

// WithLogger sets the logger. The container adds its run id to every entry.
func WithLogger(log *logger.Logger) Option {
	return func(c *Container) { c.log = log }
}

// WithTrace records a snapshot of the full state after every step.
func WithTrace(enabled bool) Option {
	return func(c *Container) { c.trace = enabled }
}

// WithParallelism computes up to n cells of a step concurrently. Values
// below 2 compute sequentially.
func WithParallelism(n int) Option {
	return func(c *Container) { c.parallelism = n }
}

// WithMetrics records step, output and compute metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Container) { c.metrics = m }
}

// WithTracing opens a span around every Compute.
func WithTracing(enabled bool) Option {
	return func(c *Container) { c.tracing = enabled }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(c *Container) { c.id = id }
}
