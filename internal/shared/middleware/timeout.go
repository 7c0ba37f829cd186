package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

const DefaultTimeout = 30 * time.Second

// Timeout bounds the request context. Handlers and gorm observe the deadline through ctx.
// Paths under any of the skip prefixes (file transfers) keep the server write timeout only.
// When the deadline passes before anything was written, a 503 is sent.
func Timeout(timeout time.Duration, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		logger.FromContext(ctx).Warn("Request deadline exceeded",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"timeout", timeout.String(),
			"status", c.Writer.Status(),
		)
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(sharedError.RequestTimeout.Status, sharedError.Wrap(sharedError.RequestTimeout))
		}
	}
}
