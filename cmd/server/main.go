package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/analytics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/bootstrap"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/router"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/cache"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/scheduler"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/storage"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/validator"
)

const (
	funnelSnapshotJob = "funnel-snapshot"
	cacheSweepJob     = "cache-sweep"
)

func main() {
	env := parseFlags()

	// LOG_LEVEL is applied again once the env file has been read
	logger.Setup(env, "")
	slog.Info("서버 초기화 시작", "env", env)

	if err := run(env); err != nil {
		slog.Error("서버 초기화 실패", "error", err)
		os.Exit(1)
	}

	slog.Info("서버 종료 완료", "env", env)
}

func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|prod)")
	flag.Parse()
	return *env
}

func run(env string) error {
	// Cancelled on SIGINT/SIGTERM; everything below shuts down from it
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	if cfg.Log.Level != "" {
		logger.Setup(env, cfg.Log.Level)
	}
	slog.Info("환경 변수 로드 성공")

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("데이터베이스 종료 실패", "error", err)
		}
	}()

	deps := router.Dependencies{
		Config:  cfg,
		DB:      db.DB,
		DBCheck: db.HealthCheck,
		Metrics: metrics.New(),
	}

	var memoryStore *cache.MemoryStore
	if cfg.HasRedis() {
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			return fmt.Errorf("redis 연결 실패: %w", err)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				slog.Error("redis 종료 실패", "error", err)
			}
		}()
		deps.TokenStore, deps.LoginLimiter, deps.CacheCheck = redisStore, redisStore, redisStore.Ping
		slog.Info("redis 연결 성공", "addr", cfg.Redis.Addr)
	} else {
		memoryStore = cache.NewMemoryStore(cfg.Auth.MaxLoginAttempts, cfg.Auth.LoginWindow)
		deps.TokenStore, deps.LoginLimiter = memoryStore, memoryStore
		slog.Warn("REDIS_ADDR 미설정: 토큰 폐기와 로그인 제한을 프로세스 메모리에 보관합니다")
	}

	deps.Store, err = storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("스토리지 초기화 실패: %w", err)
	}
	slog.Info("스토리지 초기화 완료", "driver", cfg.Storage.Driver)

	// the in-process cache is swept even when the snapshot job is disabled
	if cfg.Scheduler.Enabled || memoryStore != nil {
		jobs, err := startScheduler(cfg, db, deps.Metrics, memoryStore)
		if err != nil {
			return err
		}
		defer func() {
			if err := jobs.Shutdown(); err != nil {
				slog.Error("스케줄러 종료 실패", "error", err)
			}
		}()
	}

	srv, err := setupServer(cfg, deps)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// startScheduler registers the periodic funnel snapshot that feeds the prometheus gauges and,
// without redis, the sweep of the in-process cache
func startScheduler(cfg *config.Config, db *database.DB, m *metrics.Metrics, memoryStore *cache.MemoryStore) (*scheduler.Scheduler, error) {
	jobs, err := scheduler.New()
	if err != nil {
		return nil, err
	}

	if cfg.Scheduler.Enabled {
		analyticsService := analytics.NewAnalyticsService(db.DB, analytics.NewAnalyticsRepository())
		if err := jobs.Every(funnelSnapshotJob, cfg.Scheduler.SnapshotInterval, analyticsService.SnapshotTask(m)); err != nil {
			_ = jobs.Shutdown()
			return nil, err
		}
	}
	if memoryStore != nil {
		if err := jobs.Every(cacheSweepJob, cfg.Auth.LoginWindow, memoryStore.Sweep); err != nil {
			_ = jobs.Shutdown()
			return nil, err
		}
	}

	jobs.Start()
	return jobs, nil
}

func setupServer(cfg *config.Config, deps router.Dependencies) (*bootstrap.Server, error) {
	engine := bootstrap.NewBootstrap(cfg, deps.Metrics).SetupEngine(router.DocumentsPrefix)

	if err := validator.RegisterAll(); err != nil {
		return nil, fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	router.Setup(engine, deps)

	slog.Info("서버 설정 완료", "env", cfg.App.Env)
	return bootstrap.New(cfg, engine), nil
}
