package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/systolic/cell"
	"github.com/kbukum/systolic/chain"
	"github.com/kbukum/systolic/pipeline"
	"github.com/kbukum/systolic/render"
	"github.com/kbukum/systolic/systolic"
)

func newEvalCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a chain over the inputs (default command)",
		Args:  cobra.NoArgs,
		RunE:  a.runEval,
	}
	addEvalFlags(cmd.Flags())
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, _ []string) error {
	cfg, log, err := a.load(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateEval(); err != nil {
		return err
	}

	ctx := cmd.Context()
	tel, err := setupTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer tel.Shutdown(context.WithoutCancel(ctx))

	spec, err := cfg.ChainSpec()
	if err != nil {
		return err
	}
	cells, err := chain.NewBuilder(chain.WithLogger(log)).FromSpec(spec).Build()
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	r := render.New(format, a.out,
		render.WithVerbose(cfg.Verbose),
		render.WithNoColor(cfg.Logging.NoColor),
	)

	opts := []systolic.Option{
		systolic.WithLogger(log),
		systolic.WithParallelism(cfg.Parallelism),
		systolic.WithMetrics(tel.metrics),
		systolic.WithTracing(tel.tracing),
	}

	inputs, err := cfg.Inputs()
	if err != nil {
		return err
	}
	if cfg.Stream {
		return a.stream(ctx, inputs, cells, r, opts)
	}

	c := systolic.New(inputs, append(opts,
		systolic.WithCells(cells),
		systolic.WithTrace(cfg.Verbose),
	)...)
	if err := c.Compute(ctx); err != nil {
		return err
	}
	return r.Render(render.NewResult(spec.Name, inputs, c))
}

// stream evaluates inputs, or stdin lines when no inputs were given,
// printing each output as soon as it leaves the chain.
func (a *app) stream(ctx context.Context, inputs []int, cells []*cell.Cell, r *render.Renderer, opts []systolic.Option) error {
	var src *pipeline.Pipeline[int]
	if len(inputs) > 0 {
		src = pipeline.FromSlice(inputs)
	} else {
		lines := pipeline.Filter(pipeline.Lines(a.in), pipeline.NonBlank)
		src = pipeline.Map(lines, pipeline.ParseInt)
	}

	outputs := pipeline.Systolic(src, cells, opts...)
	return pipeline.Drain(outputs, func(_ context.Context, v int) error {
		return r.Value(v)
	}).Run(ctx)
}
