// Package pipeline provides composable, pull-based streams over integer
// inputs and the systolic operator that evaluates them.
//
// Pipelines are lazy. No work happens until values are pulled via Collect,
// Drain, or ForEach, and each stage pulls from the previous stage on demand.
//
//	src := pipeline.FromSlice([]int{3, 4, 5})
//	out := pipeline.Systolic(src, cells)
//	values, err := pipeline.Collect(ctx, out)
//
// Reading newline separated integers from a stream:
//
//	ints := pipeline.Map(pipeline.Filter(pipeline.Lines(os.Stdin), pipeline.NonBlank), pipeline.ParseInt)
//	pipeline.Drain(pipeline.Systolic(ints, cells), sink).Run(ctx)
package pipeline
