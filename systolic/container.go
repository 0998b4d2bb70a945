package systolic

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
)

// Container owns a cell chain, an input queue and an output queue, and
// drives the chain step by step.
type Container struct {
	id       string
	cells    []*cell.Cell
	inputs   []int
	outputs  []int
	expected int
	steps    int
	drained  bool

	trace     bool
	snapshots []Snapshot

	parallelism int
	tracing     bool
	metrics     *observability.Metrics
	log         *logger.Logger
}

// New creates a container that will evaluate inputs in order.
func New(inputs []int, opts ...Option) *Container {
	c := &Container{
		inputs:   append([]int(nil), inputs...),
		expected: len(inputs),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	if c.log == nil {
		c.log = logger.WithComponent("systolic")
	}
	c.log = c.log.WithFields(logger.Fields(logger.FieldRunID, c.id))
	c.cells = dedupe(c.cells, c.log)
	return c
}

// NewCounted creates a container from a declared count followed by that
// many values. The count must match the number of values.
func NewCounted(count int, values ...int) (*Container, error) {
	if count != len(values) {
		return nil, errors.InvalidInput("inputs", fmt.Sprintf("declared %d values but got %d", count, len(values)))
	}
	return New(values), nil
}

// ID returns the run id attached to logs and spans.
func (c *Container) ID() string { return c.id }

// SetCells replaces the whole chain.
func (c *Container) SetCells(cells []*cell.Cell) {
	c.cells = dedupe(cells, c.log)
}

// AddCell appends a cell to the tail. A nil cell, or one already in the
// chain, is ignored with a warning.
func (c *Container) AddCell(cl *cell.Cell) {
	if cl == nil {
		c.log.Warn("ignoring nil cell")
		return
	}
	for i, existing := range c.cells {
		if existing == cl {
			c.log.Warn("ignoring duplicate cell", logger.Fields(logger.FieldCell, i))
			return
		}
	}
	c.cells = append(c.cells, cl)
}

// Enqueue appends inputs and raises the number of outputs Compute waits for.
func (c *Container) Enqueue(values ...int) {
	if len(values) == 0 {
		return
	}
	c.inputs = append(c.inputs, values...)
	c.expected += len(values)
	c.drained = false
}

// Step advances the pipeline by one global step.
func (c *Container) Step() error {
	_, err := c.step(context.Background())
	return err
}

func (c *Container) step(ctx context.Context) (int, error) {
	if len(c.cells) == 0 {
		return 0, errors.EmptyChain()
	}

	prev := make([]cell.Partial, len(c.cells))
	for i, cl := range c.cells {
		prev[i] = cl.Partial()
	}

	head := cell.Partial{}
	if len(c.inputs) > 0 {
		head = cell.Seed(c.inputs[0])
		c.inputs = c.inputs[1:]
	}
	c.cells[0].Feed(head)
	for i := 1; i < len(c.cells); i++ {
		c.cells[i].Feed(prev[i-1])
	}

	c.computeAll()

	emitted := 0
	if tail := c.cells[len(c.cells)-1].Partial(); tail.Produced.Valid {
		c.outputs = append(c.outputs, tail.Accumulated.Or(0))
		emitted = 1
	}
	c.steps++

	if c.trace {
		c.snapshots = append(c.snapshots, c.snapshot())
	}
	if c.metrics != nil {
		c.metrics.RecordStep(ctx, emitted)
	}
	c.log.Debug("step", logger.Fields(
		logger.FieldStep, c.steps,
		logger.FieldOutputs, len(c.outputs),
		logger.FieldRemaining, len(c.inputs),
	))
	return emitted, nil
}

// computeAll computes every cell. Feeds are complete before it runs, so the
// cells are independent and may compute concurrently.
func (c *Container) computeAll() {
	workers := c.parallelism
	if workers > len(c.cells) {
		workers = len(c.cells)
	}
	if workers < 2 {
		for _, cl := range c.cells {
			cl.Compute()
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for _, cl := range c.cells {
		wg.Add(1)
		go func(cl *cell.Cell) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			cl.Compute()
		}(cl)
	}
	wg.Wait()
}

// Compute steps until every expected output has left the tail, then takes
// one more step to flush the chain. From a fresh container that is exactly
// len(inputs)+len(cells) steps. Computing a drained container does nothing.
func (c *Container) Compute(ctx context.Context) (err error) {
	if c.drained {
		return nil
	}
	if len(c.cells) == 0 {
		return c.fail(ctx, errors.EmptyChain())
	}
	if c.expected == 0 {
		return c.fail(ctx, errors.EmptyInput())
	}

	start := time.Now()
	startSteps := c.steps
	if c.tracing {
		var span trace.Span
		ctx, span = observability.StartSpan(ctx, observability.SpanCompute, trace.WithAttributes(
			attribute.String(observability.AttrRunID, c.id),
			attribute.Int(observability.AttrChainLength, len(c.cells)),
			attribute.Int(observability.AttrInputs, len(c.inputs)),
		))
		defer func() {
			observability.SetSpanAttribute(ctx, observability.AttrSteps, c.steps-startSteps)
			if err != nil {
				observability.SetSpanError(ctx, err)
			}
			span.End()
		}()
	}

	c.log.Debug("compute started", logger.Fields(
		logger.FieldInputs, len(c.inputs),
		logger.FieldChainLen, len(c.cells),
	))

	budget := len(c.inputs) + len(c.cells) + (c.expected - len(c.outputs))
	for len(c.outputs) < c.expected {
		if err := ctx.Err(); err != nil {
			return c.fail(ctx, err)
		}
		if c.steps-startSteps > budget {
			return c.fail(ctx, errors.Internal(fmt.Errorf("pipeline did not drain within %d steps", budget)))
		}
		if _, err := c.step(ctx); err != nil {
			return c.fail(ctx, err)
		}
	}
	if _, err := c.step(ctx); err != nil {
		return c.fail(ctx, err)
	}
	c.drained = true

	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordCompute(ctx, "ok", len(c.cells), elapsed)
	}
	c.log.Info("compute finished", logger.Fields(
		logger.FieldStep, c.steps,
		logger.FieldOutputs, len(c.outputs),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return nil
}

func (c *Container) fail(ctx context.Context, err error) error {
	if c.metrics != nil {
		code := "unknown"
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		c.metrics.RecordError(ctx, code, "container")
		c.metrics.RecordCompute(ctx, "error", len(c.cells), 0)
	}
	c.log.Warn("compute failed", logger.ErrorFields("compute", err))
	return err
}

// Outputs returns a copy of the values emitted so far, in input order.
func (c *Container) Outputs() []int {
	out := make([]int, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// Output returns the i-th emitted value.
func (c *Container) Output(i int) (int, bool) {
	if i < 0 || i >= len(c.outputs) {
		return 0, false
	}
	return c.outputs[i], true
}

// DumpOutputs writes each output on its own line.
func (c *Container) DumpOutputs(w io.Writer) error {
	for _, v := range c.outputs {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Remaining returns a copy of the inputs not yet fed to the head.
func (c *Container) Remaining() []int {
	out := make([]int, len(c.inputs))
	copy(out, c.inputs)
	return out
}

// Steps returns the number of global steps taken.
func (c *Container) Steps() int { return c.steps }

// Drained reports whether Compute has run to completion since the last
// Enqueue.
func (c *Container) Drained() bool { return c.drained }

// Cells returns the chain, head first.
func (c *Container) Cells() []*cell.Cell {
	return append([]*cell.Cell(nil), c.cells...)
}

// Snapshots returns the recorded step snapshots.
func (c *Container) Snapshots() []Snapshot {
	return append([]Snapshot(nil), c.snapshots...)
}

// Log renders every recorded snapshot, oldest first.
func (c *Container) Log() string {
	var b strings.Builder
	for _, s := range c.snapshots {
		b.WriteString(s.String())
	}
	return b.String()
}

// CurrentStateLog renders the latest snapshot, or "" when nothing was
// recorded.
func (c *Container) CurrentStateLog() string {
	if len(c.snapshots) == 0 {
		return ""
	}
	return c.snapshots[len(c.snapshots)-1].String()
}

func dedupe(cells []*cell.Cell, log *logger.Logger) []*cell.Cell {
	out := make([]*cell.Cell, 0, len(cells))
	seen := make(map[*cell.Cell]struct{}, len(cells))
	for i, cl := range cells {
		if cl == nil {
			log.Warn("ignoring nil cell", logger.Fields(logger.FieldCell, i))
			continue
		}
		if _, ok := seen[cl]; ok {
			log.Warn("ignoring duplicate cell", logger.Fields(logger.FieldCell, i))
			continue
		}
		seen[cl] = struct{}{}
		out = append(out, cl)
	}
	return out
}
