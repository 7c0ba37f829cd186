package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 5 * time.Second

// Checker is one dependency probed by the health endpoint
type Checker func(ctx context.Context) error

// Handler serves the health probe
type Handler struct {
	cfg      *config.Config
	database Checker
	cache    Checker // nil when redis is not configured
}

// NewHandler takes the database probe and an optional cache probe
func NewHandler(cfg *config.Config, database, cache Checker) *Handler {
	return &Handler{
		cfg:      cfg,
		database: database,
		cache:    cache,
	}
}

type checkResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

func probe(ctx context.Context, check Checker) checkResult {
	start := time.Now()
	if err := check(ctx); err != nil {
		return checkResult{Status: "down", Error: err.Error()}
	}
	return checkResult{Status: "up", LatencyMS: time.Since(start).Milliseconds()}
}

// Health reports 200 when every configured dependency answers, 503 otherwise.
// The cache is reported as disabled when no redis address is configured.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	checks := gin.H{}
	healthy := true

	db := probe(ctx, h.database)
	checks["database"] = db
	healthy = healthy && db.Status == "up"

	if h.cache != nil {
		cache := probe(ctx, h.cache)
		checks["redis"] = cache
		healthy = healthy && cache.Status == "up"
	} else {
		checks["redis"] = checkResult{Status: "disabled"}
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
		logger.FromContext(ctx).Error("Health check 실패", "checks", checks)
	}

	c.JSON(code, gin.H{
		"status": status,
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
		},
		"checks": checks,
	})
}
