package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

const (
	DefaultTickInterval = 60 * time.Second

	jobName                = "reminder-scan"
	module  logging.Module = "scheduler"
)

type Config struct {
	// Interval between scans, used when Spec is empty.
	Interval time.Duration
	// Spec is an optional cron expression with a leading seconds field,
	// e.g. "0 * * * * *".
	Spec string
}

// Scheduler fires a reminder scan on every tick. A tick never waits for the
// previous one, so a slow scan cannot delay the next window.
type Scheduler struct {
	cron    *cron.Cron
	scanner app.ReminderScanner

	// base is cancelled only after Stop gave up waiting for running ticks.
	base   context.Context
	cancel context.CancelFunc
}

func New(scanner app.ReminderScanner, cfg Config) (*Scheduler, error) {
	logger := slogAdapter{}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)

	base, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:    c,
		scanner: scanner,
		base:    base,
		cancel:  cancel,
	}

	job := cron.FuncJob(func() {
		s.RunOnce(s.base)
	})

	if cfg.Spec != "" {
		if _, err := c.AddJob(cfg.Spec, job); err != nil {
			cancel()

			return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Spec, err)
		}

		return s, nil
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	c.Schedule(cron.Every(interval), job)

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()

	slog.Info("scheduler started",
		"job.name", jobName,
		"entries", len(s.cron.Entries()),
	)
}

// Stop prevents new ticks and waits for running ones. When ctx expires first,
// running deliveries are cancelled and ctx's error is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.cancel()
		slog.Info("scheduler stopped")

		return nil
	case <-ctx.Done():
		s.cancel()
		slog.Warn("scheduler stop timed out, cancelling running scans",
			"error", ctx.Err(),
		)

		return ctx.Err()
	}
}

// RunOnce runs a single scan with job logging.
func (s *Scheduler) RunOnce(ctx context.Context) app.ScanResult {
	jobID := logging.NewRequestID()
	ctx = logging.WithModule(logging.WithRequestID(ctx, jobID), module)

	slog.LogAttrs(ctx, slog.LevelInfo, "job started",
		slog.String("event", "job.start"),
		slog.String("job.name", jobName),
		slog.String("job.id", jobID),
	)

	start := time.Now()
	result := s.scanner.Scan(ctx)

	attrs := []slog.Attr{
		slog.String("event", "job.finish"),
		slog.String("job.name", jobName),
		slog.String("job.id", jobID),
		slog.Duration("duration", time.Since(start)),
		slog.Int("discovered", result.Discovered),
		slog.Int("delivered", result.Delivered),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped),
	}

	level := slog.LevelInfo
	if result.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", result.Err.Error()))
	}

	slog.LogAttrs(ctx, level, "job finished", attrs...)

	return result
}

type slogAdapter struct{}

func (slogAdapter) Info(msg string, keysAndValues ...any) {
	slog.Debug(msg, append(keysAndValues, "module", string(module))...)
}

func (slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	slog.Error(msg, append(keysAndValues, "module", string(module), "error", err)...)
}
