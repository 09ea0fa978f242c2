package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/metrics"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/tracing"
)

const instrumentationName = "github.com/KasumiMercury/primind-calendar-remind"

type Config struct {
	ServiceInfo   logging.ServiceInfo
	Environment   logging.Environment
	GCPProjectID  string
	SamplingRate  float64
	DefaultModule logging.Module
	LogLevel      slog.Level
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

type Resources struct {
	Tracing     *tracing.Provider
	Metrics     *metrics.Provider
	HTTPMetrics *metrics.HTTPMetrics
	ScanMetrics *metrics.ScanMetrics
	TracerName  string
}

// Init installs the process-wide logger, tracer provider, meter provider and
// propagator.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}

	slog.SetDefault(slog.New(logging.NewHandler(out, logging.HandlerConfig{
		Level:         cfg.LogLevel,
		Service:       cfg.ServiceInfo,
		Environment:   cfg.Environment,
		GCPProjectID:  cfg.GCPProjectID,
		DefaultModule: cfg.DefaultModule,
	})))

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
		SamplingRate:   cfg.SamplingRate,
		ProjectID:      cfg.GCPProjectID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tp.TracerProvider())
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	mp, err := metrics.NewProvider(ctx, metrics.Config{
		ServiceName:    cfg.ServiceInfo.Name,
		ServiceVersion: cfg.ServiceInfo.Version,
		Environment:    string(cfg.Environment),
		ProjectID:      cfg.GCPProjectID,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)

		return nil, fmt.Errorf("failed to create meter provider: %w", err)
	}

	otel.SetMeterProvider(mp.MeterProvider())

	meter := mp.Meter(instrumentationName)

	httpMetrics, err := metrics.NewHTTPMetrics(meter)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	scanMetrics, err := metrics.NewScanMetrics(meter)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}

	slog.Info("observability initialized",
		"service", cfg.ServiceInfo.Name,
		"env", string(cfg.Environment),
	)

	return &Resources{
		Tracing:     tp,
		Metrics:     mp,
		HTTPMetrics: httpMetrics,
		ScanMetrics: scanMetrics,
		TracerName:  instrumentationName,
	}, nil
}

// Shutdown flushes both providers.
func (r *Resources) Shutdown(ctx context.Context) error {
	return errors.Join(
		r.Tracing.Shutdown(ctx),
		r.Metrics.Shutdown(ctx),
	)
}
