package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/systolic/chain"
	"github.com/kbukum/systolic/logger"
	"github.com/kbukum/systolic/observability"
	"github.com/kbukum/systolic/systolic"
)

// Health returns a handler that reports service health including component statuses.
func Health(serviceName, version string, checkers ...observability.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.Check(c.Request.Context(), serviceName, version, checkers...)

		httpStatus := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     sh.Status,
			"service":    sh.Service,
			"version":    sh.Version,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}

// EngineProbe evaluates x^2 - 4x + 7 at x = 3 and reports down unless the
// result is 4.
func EngineProbe() observability.HealthChecker {
	return observability.HealthCheckFunc(func(ctx context.Context) observability.Health {
		h := observability.Health{Name: "engine", Status: observability.HealthStatusUp}
		nop := logger.Nop()
		cells, err := chain.NewBuilder(chain.WithLogger(nop)).FromCoefficients(1, -4, 7).Build()
		if err != nil {
			h.Status, h.Message = observability.HealthStatusDown, err.Error()
			return h
		}
		c := systolic.New([]int{3}, systolic.WithCells(cells), systolic.WithLogger(nop))
		if err := c.Compute(ctx); err != nil {
			h.Status, h.Message = observability.HealthStatusDown, err.Error()
			return h
		}
		if got, _ := c.Output(0); got != 4 {
			h.Status, h.Message = observability.HealthStatusDown, fmt.Sprintf("probe returned %d, want 4", got)
		}
		return h
	})
}
