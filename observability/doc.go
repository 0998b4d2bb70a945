// Package observability provides OpenTelemetry tracing and metrics for
// systolic containers and the evaluation service.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanCompute)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("systolic"))
//	metrics.RecordCompute(ctx, "ok", 4, duration)
//
// Health:
//
//	health := observability.NewServiceHealth("systolic", version.GetShortVersion())
package observability
