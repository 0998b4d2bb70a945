package resilience

import (
	"context"
	"time"

	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
)

// BulkheadConfig configures a bulkhead.
type BulkheadConfig struct {
	// Name identifies this bulkhead in errors, logs and metrics.
	Name string
	// MaxConcurrent is the maximum number of concurrent calls.
	MaxConcurrent int
	// MaxWait is how long to wait for a slot. 0 means fail immediately.
	MaxWait time.Duration
	// Metrics, when set, counts rejections as errors of type BUSY.
	Metrics *observability.Metrics
	// Logger receives a warning for every rejection.
	Logger *logger.Logger
}

// Bulkhead limits concurrent evaluations.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}
}

// NewBulkhead creates a new bulkhead. MaxConcurrent below 1 means 1.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}
	if config.Logger == nil {
		config.Logger = logger.WithComponent("resilience")
	}
	return &Bulkhead{
		config: config,
		sem:    make(chan struct{}, config.MaxConcurrent),
	}
}

// Execute runs fn within the bulkhead. It returns a BUSY error when no slot
// frees up in time, or the context error when ctx ends first.
func (b *Bulkhead) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.acquire(ctx); err != nil {
		b.reject(ctx, err)
		return err
	}
	defer b.release()
	return fn(ctx)
}

// Do runs fn within the bulkhead and returns its value.
func Do[T any](ctx context.Context, b *Bulkhead, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := b.Execute(ctx, func(ctx context.Context) error {
		var fnErr error
		result, fnErr = fn(ctx)
		return fnErr
	})
	return result, err
}

func (b *Bulkhead) acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	default:
	}

	if b.config.MaxWait <= 0 {
		return errors.Busy(b.config.Name)
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()

	select {
	case b.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return errors.Busy(b.config.Name)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bulkhead) release() {
	<-b.sem
}

func (b *Bulkhead) reject(ctx context.Context, err error) {
	b.config.Logger.Warn("bulkhead rejected work", logger.Fields(
		"bulkhead", b.config.Name,
		"in_use", b.InUse(),
		logger.FieldError, err.Error(),
	))
	if b.config.Metrics != nil && errors.IsCode(err, errors.ErrCodeBusy) {
		b.config.Metrics.RecordError(ctx, string(errors.ErrCodeBusy), b.config.Name)
	}
}

// Available returns the number of available slots.
func (b *Bulkhead) Available() int {
	return b.config.MaxConcurrent - len(b.sem)
}

// InUse returns the number of slots currently in use.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}

// MaxConcurrent returns the maximum concurrent calls allowed.
func (b *Bulkhead) MaxConcurrent() int {
	return b.config.MaxConcurrent
}
