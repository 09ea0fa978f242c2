package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-calendar-remind/internal/observability"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
)

func TestInitSuccess(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	var buf bytes.Buffer

	res, err := observability.Init(context.Background(), observability.Config{
		ServiceInfo:   logging.ServiceInfo{Name: "calendar-remind", Version: "test"},
		Environment:   logging.EnvDev,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("test"),
		LogLevel:      slog.LevelInfo,
		LogOutput:     &buf,
	})
	require.NoError(t, err)

	assert.NotNil(t, res.HTTPMetrics)
	assert.NotNil(t, res.ScanMetrics)
	assert.Contains(t, buf.String(), "observability initialized")
	assert.Contains(t, buf.String(), `"module":"test"`)

	assert.NoError(t, res.Shutdown(context.Background()))
}
