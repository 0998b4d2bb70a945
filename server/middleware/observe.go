package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/systolic/observability"
)

// Observe wraps each request in an operation span and records request
// metrics. metrics may be nil. The OperationContext is stored in the
// request context for handlers.
func Observe(serviceName string, metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		op := c.FullPath()
		if op == "" {
			op = "unmatched"
		}
		oc := observability.NewOperationContext(serviceName, c.Request.Method+" "+op, GetRequestID(c), metrics)
		ctx, span := oc.StartSpanForOperation(c.Request.Context(), observability.SpanHTTPRequest)
		c.Request = c.Request.WithContext(observability.WithOperationContext(ctx, oc))

		c.Next()

		status := c.Writer.Status()
		var err error
		if last := c.Errors.Last(); last != nil {
			err = last.Err
		}
		oc.EndOperation(c.Request.Context(), span, strconv.Itoa(status), err)
		if status >= 500 && metrics != nil {
			metrics.RecordError(c.Request.Context(), strconv.Itoa(status), "server")
		}
	}
}
