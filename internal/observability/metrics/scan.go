package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ScanMetrics counts what each reminder scan found and did.
type ScanMetrics struct {
	scans      metric.Int64Counter
	discovered metric.Int64Counter
	outcomes   metric.Int64Counter
	duration   metric.Float64Histogram
}

func NewScanMetrics(meter metric.Meter) (*ScanMetrics, error) {
	scans, err := meter.Int64Counter("reminder.scan.count",
		metric.WithDescription("Number of reminder scans"),
	)
	if err != nil {
		return nil, err
	}

	discovered, err := meter.Int64Counter("reminder.scan.discovered",
		metric.WithDescription("Reminders found inside a scan window"),
	)
	if err != nil {
		return nil, err
	}

	outcomes, err := meter.Int64Counter("reminder.delivery.count",
		metric.WithDescription("Reminder delivery attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("reminder.scan.duration",
		metric.WithDescription("Duration of a reminder scan including deliveries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ScanMetrics{
		scans:      scans,
		discovered: discovered,
		outcomes:   outcomes,
		duration:   duration,
	}, nil
}

func (m *ScanMetrics) RecordScan(
	ctx context.Context,
	discovered, delivered, failed, skipped int,
	queryFailed bool,
	elapsed time.Duration,
) {
	status := "ok"
	if queryFailed {
		status = "query_failed"
	}

	m.scans.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	m.duration.Record(ctx, elapsed.Seconds())
	m.discovered.Add(ctx, int64(discovered))

	for outcome, n := range map[string]int{
		"delivered": delivered,
		"failed":    failed,
		"skipped":   skipped,
	} {
		if n > 0 {
			m.outcomes.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", outcome)))
		}
	}
}
