package middleware

import (
	"log/slog"
	"time"

	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// quietPaths are polled by probes and scrapers; they are logged at debug level
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestLogger binds a request-scoped slog logger into the request context and
// writes one access line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqLogger := slog.Default().With("request_id", GetRequestID(c))
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if memberID, ok := c.Get(sharedContext.MemberIDKey); ok {
			fields = append(fields, "member_id", memberID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		const msg = "Request processed"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		case quietPaths[path]:
			reqLogger.Debug(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}
