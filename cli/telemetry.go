package cli

import (
	"context"
	"time"

	"github.com/kbukum/systolic/config"
	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
	"github.com/kbukum/systolic/version"
)

// telemetry holds what commands need from OpenTelemetry. The zero value
// disables spans and metrics.
type telemetry struct {
	metrics  *observability.Metrics
	tracing  bool
	shutdown []func(context.Context) error
	log      *logger.Logger
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *logger.Logger) (*telemetry, error) {
	tel := &telemetry{log: log}
	if !cfg.Telemetry.Enabled {
		return tel, nil
	}

	tp, err := observability.InitTracer(ctx, &observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: version.GetShortVersion(),
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, errors.Internal(err)
	}
	tel.shutdown = append(tel.shutdown, tp.Shutdown)
	tel.tracing = true

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: version.GetShortVersion(),
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Interval:       15 * time.Second,
	})
	if err != nil {
		tel.Shutdown(ctx)
		return nil, errors.Internal(err)
	}
	tel.shutdown = append(tel.shutdown, mp.Shutdown)

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		tel.Shutdown(ctx)
		return nil, errors.Internal(err)
	}
	tel.metrics = metrics

	log.Debug("telemetry enabled", logger.Fields("endpoint", cfg.Telemetry.Endpoint))
	return tel, nil
}

// Shutdown flushes and stops the providers, newest first.
func (t *telemetry) Shutdown(ctx context.Context) {
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		if err := t.shutdown[i](ctx); err != nil {
			t.log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}
	t.shutdown = nil
}
