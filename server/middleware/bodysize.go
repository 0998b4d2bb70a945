package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/systolic/errors"
	"github.com/kbukum/systolic/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit returns a Gin middleware that restricts the request body to
// the given size string (e.g. "1MB", "512KB"). A request that declares a
// larger Content-Length is rejected up front; a body that grows past the
// limit while it is read fails the read with *http.MaxBytesError.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		if c.Request.ContentLength > size {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errors.PayloadTooLarge(size).ToResponse())
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		c.Next()
	}
}
