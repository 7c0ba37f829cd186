// Package scheduler runs periodic background jobs on gocron.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Task is one unit of periodic work. It receives a context cancelled on shutdown.
type Task func(ctx context.Context) error

type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("스케줄러 생성 실패: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, ctx: ctx, cancel: cancel}, nil
}

// Every registers task to run every interval, once immediately on start.
// Overlapping runs are skipped.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("%s 작업 등록 실패: %w", name, err)
	}
	slog.Info("백그라운드 작업 등록", "job", name, "interval", interval.String())
	return nil
}

func (s *Scheduler) run(name string, task Task) {
	start := time.Now()
	log := slog.With("component", "scheduler", "job", name)
	if err := task(s.ctx); err != nil {
		log.Error("백그라운드 작업 실패", "error", err, "elapsed", time.Since(start).String())
		return
	}
	log.Debug("백그라운드 작업 완료", "elapsed", time.Since(start).String())
}

func (s *Scheduler) Start() {
	slog.Info("스케줄러 시작", "jobs", len(s.scheduler.Jobs()))
	s.scheduler.Start()
}

// Shutdown cancels running tasks and waits for them to return
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("스케줄러 종료 실패: %w", err)
	}
	slog.Info("스케줄러 종료")
	return nil
}
