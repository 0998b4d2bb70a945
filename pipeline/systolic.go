package pipeline

import (
	"context"

	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/systolic"
)

// Systolic evaluates every pulled input through the cell chain and yields
// each result as it leaves the tail, in input order. One step is taken per
// pulled input; when the source is exhausted the chain is flushed.
//
// The cells are owned by the pipeline once it runs and must not be shared
// with another container.
func Systolic(src *Pipeline[int], cells []*cell.Cell, opts ...systolic.Option) *Pipeline[int] {
	return &Pipeline[int]{
		create: func(ctx context.Context) Iterator[int] {
			opts := append([]systolic.Option{systolic.WithCells(cells)}, opts...)
			return &systolicIter{
				source:    src.create(ctx),
				container: systolic.New(nil, opts...),
			}
		},
	}
}

type systolicIter struct {
	source    Iterator[int]
	container *systolic.Container
	next      int
	enqueued  int
	exhausted bool
}

func (it *systolicIter) Next(ctx context.Context) (int, bool, error) {
	for {
		if v, ok := it.container.Output(it.next); ok {
			it.next++
			return v, true, nil
		}
		if it.exhausted {
			return 0, false, nil
		}

		x, ok, err := it.source.Next(ctx)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			it.exhausted = true
			if it.enqueued == 0 {
				return 0, false, nil
			}
			if err := it.container.Compute(ctx); err != nil {
				return 0, false, err
			}
			continue
		}

		it.container.Enqueue(x)
		it.enqueued++
		if err := it.container.Step(); err != nil {
			return 0, false, err
		}
	}
}

func (it *systolicIter) Close() error { return it.source.Close() }
