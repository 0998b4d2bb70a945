// Package resilience bounds how much evaluation work runs at once.
//
// A Bulkhead hands out a fixed number of slots. Work that cannot get a slot
// within the configured wait is rejected with a BUSY error instead of
// queueing without limit:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "evaluator", MaxConcurrent: 8})
//	err := bh.Execute(ctx, func(ctx context.Context) error {
//	    return container.Compute(ctx)
//	})
package resilience
