package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/metrics"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}

	return out
}

func sumWhere(data metricdata.Aggregation, key, value string) int64 {
	sum, ok := data.(metricdata.Sum[int64])
	if !ok {
		return -1
	}

	var total int64
	for _, dp := range sum.DataPoints {
		if key == "" {
			total += dp.Value

			continue
		}

		if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
			total += dp.Value
		}
	}

	return total
}

func TestScanMetricsSuccess(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := metrics.NewScanMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordScan(ctx, 5, 3, 1, 1, false, 20*time.Millisecond)
	m.RecordScan(ctx, 0, 0, 0, 0, true, time.Millisecond)

	data := collect(t, reader)

	assert.Equal(t, int64(1), sumWhere(data["reminder.scan.count"], "status", "ok"))
	assert.Equal(t, int64(1), sumWhere(data["reminder.scan.count"], "status", "query_failed"))
	assert.Equal(t, int64(5), sumWhere(data["reminder.scan.discovered"], "", ""))
	assert.Equal(t, int64(3), sumWhere(data["reminder.delivery.count"], "outcome", "delivered"))
	assert.Equal(t, int64(1), sumWhere(data["reminder.delivery.count"], "outcome", "failed"))
	assert.Equal(t, int64(1), sumWhere(data["reminder.delivery.count"], "outcome", "skipped"))
}

func TestHTTPMetricsSuccess(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := metrics.NewHTTPMetrics(mp.Meter("test"))
	require.NoError(t, err)

	m.Record(context.Background(), "POST", "/api/v1/reminders", 201, 5*time.Millisecond)
	m.Record(context.Background(), "POST", "/api/v1/reminders", 400, time.Millisecond)

	data := collect(t, reader)

	assert.Equal(t, int64(2), sumWhere(data["http.server.request.count"], "http.route", "/api/v1/reminders"))
	assert.Equal(t, int64(1), sumWhere(data["http.server.request.count"], "http.response.status_code", "400"))
}
