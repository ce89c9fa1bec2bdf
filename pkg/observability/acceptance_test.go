package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/solast-dev/solast/pkg/observability"
)

// acceptanceSpanCount is the expected number of spans in the acceptance test
// (root + parse + sanity).
const acceptanceSpanCount = 3

// acceptanceNodeCount is the simulated node count used in log assertions.
const acceptanceNodeCount = 42

type acceptanceCacheStats struct {
	hits   int64
	misses int64
}

func (s *acceptanceCacheStats) CacheHits() int64   { return s.hits }
func (s *acceptanceCacheStats) CacheMisses() int64 { return s.misses }

// TestAcceptance_EndToEnd verifies all three observability signals (traces,
// metrics, structured logs with trace context) work together in a single
// simulated parse/sanity run.
func TestAcceptance_EndToEnd(t *testing.T) {
	t.Parallel()

	// Setup: in-memory trace exporter.
	spanExporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spanExporter))

	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	tracer := tp.Tracer("solast")

	// Setup: in-memory metric reader.
	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	meter := mp.Meter("solast")

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	tree := &acceptanceCacheStats{hits: 100, misses: 10}

	err = observability.RegisterCacheMetrics(meter, map[string]observability.CacheStatsProvider{
		"tree": tree,
	})
	require.NoError(t, err)

	// Setup: structured logger with trace context.
	var logBuf bytes.Buffer

	innerHandler := slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	tracingHandler := observability.NewTracingHandler(innerHandler, "solast", "test", observability.ModeCLI)
	logger := slog.New(tracingHandler)

	// Simulate a CLI run: root span, child spans, metrics, logs.
	ctx, rootSpan := tracer.Start(context.Background(), "solast.run")

	_, parseSpan := tracer.Start(ctx, "solast.parse")
	parseSpan.End()

	_, sanitySpan := tracer.Start(ctx, "solast.sanity_check")
	sanitySpan.End()

	// Record metrics within the trace context.
	red.RecordRequest(ctx, "cli.parse", "ok", time.Second)

	// Emit a log line within the trace context.
	logger.InfoContext(ctx, "parse.complete", "nodes", acceptanceNodeCount)

	rootSpan.End()

	// Assert: Traces.
	spans := spanExporter.GetSpans()
	require.Len(t, spans, acceptanceSpanCount, "expected root + 2 child spans")

	spanNames := make(map[string]bool, len(spans))
	for _, s := range spans {
		spanNames[s.Name] = true
	}

	assert.True(t, spanNames["solast.run"], "root span should exist")
	assert.True(t, spanNames["solast.parse"], "parse span should exist")
	assert.True(t, spanNames["solast.sanity_check"], "sanity span should exist")

	// All spans share the same trace ID.
	traceID := spans[0].SpanContext.TraceID()
	for _, s := range spans[1:] {
		assert.Equal(t, traceID, s.SpanContext.TraceID(),
			"span %q should share trace ID", s.Name)
	}

	// Assert: Metrics.
	var rm metricdata.ResourceMetrics

	err = metricReader.Collect(ctx, &rm)
	require.NoError(t, err)

	reqTotal := findMetric(rm, "solast.requests.total")
	require.NotNil(t, reqTotal, "request counter should be recorded")

	reqDuration := findMetric(rm, "solast.request.duration.seconds")
	require.NotNil(t, reqDuration, "duration histogram should be recorded")

	cacheHits := findMetric(rm, "solast.cache.hits")
	require.NotNil(t, cacheHits, "cache hits gauge should be recorded")

	cacheMisses := findMetric(rm, "solast.cache.misses")
	require.NotNil(t, cacheMisses, "cache misses gauge should be recorded")

	// Assert: Logs contain trace_id.
	var logRecord map[string]any

	err = json.Unmarshal(logBuf.Bytes(), &logRecord)
	require.NoError(t, err)

	assert.Equal(t, traceID.String(), logRecord["trace_id"],
		"log line should contain the active trace_id")
	assert.Contains(t, logRecord, "span_id",
		"log line should contain span_id")
	assert.Equal(t, "solast", logRecord["service"],
		"log line should contain service name")

	nodes, ok := logRecord["nodes"].(float64)
	require.True(t, ok, "nodes should be a number")
	assert.InDelta(t, acceptanceNodeCount, nodes, 0,
		"log line should contain custom attributes")
}
