package endpoint

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/systolic/chain"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
	"github.com/kbukum/systolic/resilience"
	"github.com/kbukum/systolic/server/middleware"
	"github.com/kbukum/systolic/systolic"
	"github.com/kbukum/systolic/validation"
)

// EvaluateRequest is the body of POST /v1/evaluate. Exactly one of
// Coefficients, Equation or Cells selects the chain.
type EvaluateRequest struct {
	Inputs       []int           `json:"inputs"`
	Coefficients []int           `json:"coefficients,omitempty"`
	Equation     string          `json:"equation,omitempty" validate:"omitempty,equation"`
	Cells        []chain.CellDef `json:"cells,omitempty"`
	Trace        bool            `json:"trace,omitempty"`
	Parallel     int             `json:"parallel,omitempty" validate:"gte=0,lte=256"`
}

// EvaluateResponse carries the outputs of one evaluation.
type EvaluateResponse struct {
	RunID   string              `json:"run_id"`
	Outputs []int               `json:"outputs"`
	Steps   int                 `json:"steps"`
	Log     string              `json:"log,omitempty"`
	Trace   []systolic.Snapshot `json:"trace,omitempty"`
}

// Evaluator serves evaluation requests.
type Evaluator struct {
	maxInputs     int
	maxCells      int
	maxTraceCells int
	metrics   *observability.Metrics
	tracing   bool
	bulkhead  *resilience.Bulkhead
	log       *logger.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithMetrics records container metrics for every evaluation.
func WithMetrics(m *observability.Metrics) EvaluatorOption {
	return func(e *Evaluator) { e.metrics = m }
}

// WithTracing emits a compute span for every evaluation.
func WithTracing(enabled bool) EvaluatorOption {
	return func(e *Evaluator) { e.tracing = enabled }
}

// WithMaxCells rejects chains longer than n cells. Zero means unlimited.
func WithMaxCells(n int) EvaluatorOption {
	return func(e *Evaluator) { e.maxCells = n }
}

// WithMaxTraceCells rejects traced requests that would record more than n
// cell states (steps times chain length). Zero means unlimited.
func WithMaxTraceCells(n int) EvaluatorOption {
	return func(e *Evaluator) { e.maxTraceCells = n }
}

// WithBulkhead bounds how many evaluations run at once.
func WithBulkhead(b *resilience.Bulkhead) EvaluatorOption {
	return func(e *Evaluator) { e.bulkhead = b }
}

// WithLogger sets the logger handed to builders and containers.
func WithLogger(log *logger.Logger) EvaluatorOption {
	return func(e *Evaluator) { e.log = log }
}

// NewEvaluator creates an Evaluator accepting at most maxInputs inputs per
// request. Zero means unlimited.
func NewEvaluator(maxInputs int, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{maxInputs: maxInputs}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.WithComponent("evaluate")
	}
	return e
}

// Handle is the Gin handler for POST /v1/evaluate.
func (e *Evaluator) Handle(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			RespondWithError(c, errors.PayloadTooLarge(tooLarge.Limit).WithCause(err))
			return
		}
		RespondWithError(c, errors.InvalidFormat("body", "JSON evaluation request").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		RespondWithError(c, err)
		return
	}
	if e.maxInputs > 0 && len(req.Inputs) > e.maxInputs {
		RespondWithError(c, errors.InvalidInput("inputs", fmt.Sprintf("at most %d values are accepted", e.maxInputs)))
		return
	}
	if e.maxCells > 0 && len(req.Coefficients)+len(req.Cells) > e.maxCells {
		RespondWithError(c, errors.InvalidInput("cells", fmt.Sprintf("at most %d cells are accepted", e.maxCells)))
		return
	}

	runID := middleware.GetRequestID(c)
	var resp *EvaluateResponse
	var err error
	if e.bulkhead != nil {
		resp, err = resilience.Do(c.Request.Context(), e.bulkhead, func(ctx context.Context) (*EvaluateResponse, error) {
			return e.Evaluate(ctx, &req, runID)
		})
	} else {
		resp, err = e.Evaluate(c.Request.Context(), &req, runID)
	}
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, resp)
}

// Evaluate builds the requested chain and computes every input through it.
func (e *Evaluator) Evaluate(ctx context.Context, req *EvaluateRequest, runID string) (*EvaluateResponse, error) {
	spec := &chain.Spec{
		Coefficients: req.Coefficients,
		Equation:     req.Equation,
		Cells:        req.Cells,
	}
	cells, err := chain.NewBuilder(chain.WithLogger(e.log)).FromSpec(spec).Build()
	if err != nil {
		return nil, err
	}
	if e.maxCells > 0 && len(cells) > e.maxCells {
		return nil, errors.InvalidInput("cells", fmt.Sprintf("at most %d cells are accepted", e.maxCells))
	}
	if req.Trace && e.maxTraceCells > 0 {
		// Compute takes len(inputs)+len(cells) steps and snapshots every cell on each.
		if states := (len(req.Inputs) + len(cells)) * len(cells); states > e.maxTraceCells {
			return nil, errors.InvalidInput("trace", fmt.Sprintf("tracing %d cell states exceeds the limit of %d", states, e.maxTraceCells))
		}
	}

	opts := []systolic.Option{
		systolic.WithCells(cells),
		systolic.WithLogger(e.log),
		systolic.WithTrace(req.Trace),
		systolic.WithParallelism(req.Parallel),
		systolic.WithMetrics(e.metrics),
		systolic.WithTracing(e.tracing),
	}
	if runID != "" {
		opts = append(opts, systolic.WithRunID(runID))
	}
	container := systolic.New(req.Inputs, opts...)
	if err := container.Compute(ctx); err != nil {
		return nil, err
	}

	return &EvaluateResponse{
		RunID:   container.ID(),
		Outputs: container.Outputs(),
		Steps:   container.Steps(),
		Log:     container.Log(),
		Trace:   container.Snapshots(),
	}, nil
}
