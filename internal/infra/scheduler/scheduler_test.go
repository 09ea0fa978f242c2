package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

type scannerFunc func(ctx context.Context) app.ScanResult

func (f scannerFunc) Scan(ctx context.Context) app.ScanResult {
	return f(ctx)
}

func TestRunOnceSuccess(t *testing.T) {
	var gotModule logging.Module
	var gotRequestID string

	s, err := scheduler.New(scannerFunc(func(ctx context.Context) app.ScanResult {
		gotModule = logging.ModuleFromContext(ctx)
		gotRequestID = logging.RequestIDFromContext(ctx)

		return app.ScanResult{Discovered: 2, Delivered: 2}
	}), scheduler.Config{Interval: time.Minute})
	require.NoError(t, err)

	result := s.RunOnce(context.Background())

	assert.Equal(t, 2, result.Delivered)
	assert.Equal(t, logging.Module("scheduler"), gotModule)
	assert.NotEmpty(t, gotRequestID)
}

func TestRunOnceScanError(t *testing.T) {
	s, err := scheduler.New(scannerFunc(func(context.Context) app.ScanResult {
		return app.ScanResult{Err: errors.New("store down")}
	}), scheduler.Config{})
	require.NoError(t, err)

	result := s.RunOnce(context.Background())

	assert.Error(t, result.Err)
}

func TestNewInvalidSpecError(t *testing.T) {
	_, err := scheduler.New(scannerFunc(func(context.Context) app.ScanResult {
		return app.ScanResult{}
	}), scheduler.Config{Spec: "every now and then"})

	assert.Error(t, err)
}

func TestStartStopSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ticks atomic.Int32

	s, err := scheduler.New(scannerFunc(func(context.Context) app.ScanResult {
		ticks.Add(1)

		return app.ScanResult{}
	}), scheduler.Config{Spec: "* * * * * *"})
	require.NoError(t, err)

	s.Start()

	assert.Eventually(t, func() bool {
		return ticks.Load() >= 1
	}, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Stop(ctx))
}

func TestStopWaitsForRunningTickSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	entered := make(chan struct{})
	var once atomic.Bool
	var finished atomic.Bool

	s, err := scheduler.New(scannerFunc(func(context.Context) app.ScanResult {
		if once.CompareAndSwap(false, true) {
			close(entered)
			time.Sleep(200 * time.Millisecond)
			finished.Store(true)
		}

		return app.ScanResult{}
	}), scheduler.Config{Spec: "* * * * * *"})
	require.NoError(t, err)

	s.Start()

	select {
	case <-entered:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler never ticked")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Stop(ctx))
	assert.True(t, finished.Load())
}

func TestStopTimeoutCancelsScanError(t *testing.T) {
	entered := make(chan struct{})
	released := make(chan struct{})
	var once atomic.Bool

	s, err := scheduler.New(scannerFunc(func(ctx context.Context) app.ScanResult {
		if once.CompareAndSwap(false, true) {
			close(entered)
			<-ctx.Done()
			close(released)
		}

		return app.ScanResult{}
	}), scheduler.Config{Spec: "* * * * * *"})
	require.NoError(t, err)

	s.Start()

	select {
	case <-entered:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler never ticked")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("running scan was not cancelled")
	}
}

func TestPanickingScanIsRecoveredSuccess(t *testing.T) {
	var ticks atomic.Int32

	s, err := scheduler.New(scannerFunc(func(context.Context) app.ScanResult {
		if ticks.Add(1) == 1 {
			panic("boom")
		}

		return app.ScanResult{}
	}), scheduler.Config{Spec: "* * * * * *"})
	require.NoError(t, err)

	s.Start()

	assert.Eventually(t, func() bool {
		return ticks.Load() >= 2
	}, 5*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Stop(ctx))
}
