package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
)

// Server owns the HTTP listener lifecycle
type Server struct {
	cfg    *config.Config
	server *http.Server
}

func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.App.Port),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests within the graceful timeout.
// A listener failure is returned immediately.
func (s *Server) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("서버 시작 중",
			"port", s.cfg.App.Port,
			"env", s.cfg.App.Env,
			"read_timeout", s.cfg.Server.ReadTimeout,
			"write_timeout", s.cfg.Server.WriteTimeout,
		)
		serverErrors <- s.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("서버 오류: %w", err)
		}
		return nil

	case <-ctx.Done():
		slog.Info("서버 종료 중...", "graceful_timeout", s.cfg.Server.GracefulTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.GracefulTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		return nil
	}
}
