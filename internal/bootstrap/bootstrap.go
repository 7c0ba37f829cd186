package bootstrap

import (
	"io"
	"net/http"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap builds the gin engine and its global middleware chain
type Bootstrap struct {
	cfg     *config.Config
	metrics *metrics.Metrics
}

func NewBootstrap(cfg *config.Config, m *metrics.Metrics) *Bootstrap {
	return &Bootstrap{
		cfg:     cfg,
		metrics: m,
	}
}

// SetupEngine creates a gin engine without gin's own logger. Requests whose path starts with
// one of untimedPrefixes are not bound by the global request timeout.
func (b *Bootstrap) SetupEngine(untimedPrefixes ...string) *gin.Engine {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// slog handles all output
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()
	engine.MaxMultipartMemory = 8 << 20

	// Order matters: the request id feeds the logger, the logger feeds everything after it
	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger())
	engine.Use(b.metrics.Middleware())
	engine.Use(middleware.CORS(b.cfg.CORS))
	engine.Use(middleware.Timeout(middleware.DefaultTimeout, untimedPrefixes...))

	return engine
}

// recoveryHandler logs any panic value and answers with the standard 500 envelope
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Error("Panic Recovered",
		"panic", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, sharedError.Wrap(sharedError.InternalServerError))
}
