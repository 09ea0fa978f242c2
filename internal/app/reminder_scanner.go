package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-calendar-remind/internal/domain"
)

const DefaultMaxConcurrency = 16

type ScanResult struct {
	Window     domain.DueWindow
	Discovered int
	Delivered  int
	Failed     int
	Skipped    int
	Duration   time.Duration
	Err        error
}

// ScanRecorder receives the outcome of every scan, typically to update
// metrics.
type ScanRecorder interface {
	RecordScan(ctx context.Context, discovered, delivered, failed, skipped int, queryFailed bool, duration time.Duration)
}

type ReminderScanner interface {
	Scan(ctx context.Context) ScanResult
}

type ScannerConfig struct {
	GraceBefore    time.Duration
	Lookahead      time.Duration
	MaxConcurrency int
}

type ScannerOption func(*reminderScannerImpl)

func WithClock(clock func() time.Time) ScannerOption {
	return func(s *reminderScannerImpl) {
		s.clock = clock
	}
}

func WithScanRecorder(recorder ScanRecorder) ScannerOption {
	return func(s *reminderScannerImpl) {
		s.recorder = recorder
	}
}

type reminderScannerImpl struct {
	repo           domain.ReminderRepository
	coordinator    DeliveryCoordinator
	graceBefore    time.Duration
	lookahead      time.Duration
	maxConcurrency int
	clock          func() time.Time
	recorder       ScanRecorder

	// inFlight holds reminders currently being delivered by any scan of
	// this process.
	inFlight sync.Map
}

func NewReminderScanner(
	repo domain.ReminderRepository,
	coordinator DeliveryCoordinator,
	cfg ScannerConfig,
	opts ...ScannerOption,
) ReminderScanner {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultMaxConcurrency
	}

	s := &reminderScannerImpl{
		repo:           repo,
		coordinator:    coordinator,
		graceBefore:    cfg.GraceBefore,
		lookahead:      cfg.Lookahead,
		maxConcurrency: cfg.MaxConcurrency,
		clock:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan delivers every reminder due within the window around now and returns
// once all of those deliveries have finished. It never fails: problems are
// reported in the result and retried by the next scan.
func (s *reminderScannerImpl) Scan(ctx context.Context) (result ScanResult) {
	started := s.clock()

	defer func() {
		result.Duration = s.clock().Sub(started)
		if s.recorder != nil {
			s.recorder.RecordScan(ctx,
				result.Discovered, result.Delivered, result.Failed, result.Skipped,
				result.Err != nil, result.Duration,
			)
		}
	}()

	window, err := domain.NewDueWindow(started, s.graceBefore, s.lookahead)
	if err != nil {
		result.Err = err

		slog.ErrorContext(ctx, "invalid scan window",
			"error", err,
		)

		return result
	}

	result.Window = window

	due, err := s.repo.ListDueBetweenAllUsers(ctx, window.LowScore(), window.HighScore())
	if err != nil {
		result.Err = storeError(err)

		slog.ErrorContext(ctx, "failed to query due reminders",
			"event", "scan.query_failed",
			"window_start", window.Start(),
			"window_end", window.End(),
			"error", err,
		)

		return result
	}

	result.Discovered = len(due)
	if len(due) == 0 {
		slog.DebugContext(ctx, "no due reminders",
			"window_start", window.Start(),
			"window_end", window.End(),
		)

		return result
	}

	var delivered, failed, skipped atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)

	for _, reminder := range due {
		key := reminder.UserID.String() + "/" + reminder.ReminderID.String()

		if _, busy := s.inFlight.LoadOrStore(key, struct{}{}); busy {
			skipped.Add(1)

			continue
		}

		g.Go(func() error {
			defer s.inFlight.Delete(key)

			if err := s.coordinator.Deliver(ctx, reminder); err != nil {
				failed.Add(1)

				return nil
			}

			delivered.Add(1)

			return nil
		})
	}

	_ = g.Wait()

	result.Delivered = int(delivered.Load())
	result.Failed = int(failed.Load())
	result.Skipped = int(skipped.Load())

	slog.InfoContext(ctx, "scan finished",
		"event", "scan.finished",
		"window_start", window.Start(),
		"window_end", window.End(),
		"discovered", result.Discovered,
		"delivered", result.Delivered,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	return result
}
