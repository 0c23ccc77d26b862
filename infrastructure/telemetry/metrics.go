package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	invocations metric.Int64Counter
	errors      metric.Int64Counter

	duration metric.Float64Histogram
	rows     metric.Int64Histogram

	activeSessions metric.Int64UpDownCounter

	initErr error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter.
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/nutridb/usda-mcp",
		MeterVersion: "1.0",
	}
}

// NewMetricsProvider creates a new metrics provider using the global
// meter provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}
	mp.initErr = mp.initInstruments()

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	mp.invocations, err = mp.meter.Int64Counter(
		"mcp.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"mcp.tool.errors",
		metric.WithDescription("Number of failed tool invocations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	mp.duration, err = mp.meter.Float64Histogram(
		"mcp.tool.duration",
		metric.WithDescription("Duration of tool invocations"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.rows, err = mp.meter.Int64Histogram(
		"mcp.tool.rows",
		metric.WithDescription("Rows returned per tool invocation"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return err
	}

	mp.activeSessions, err = mp.meter.Int64UpDownCounter(
		"mcp.sessions.active",
		metric.WithDescription("Number of active client sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordInvocation records a completed tool invocation.
func (mp *MetricsProvider) RecordInvocation(ctx context.Context, toolName string, success bool, rowCount int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("tool.name", toolName),
		attribute.Bool("success", success),
	}

	mp.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.duration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if success {
		mp.rows.Record(ctx, int64(rowCount), metric.WithAttributes(
			attribute.String("tool.name", toolName),
		))
	}
}

// RecordError records a failed tool invocation by error class.
func (mp *MetricsProvider) RecordError(ctx context.Context, toolName string, errorType string) {
	mp.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool.name", toolName),
		attribute.String("error.type", errorType),
	))
}

// IncrementActiveSessions increments the active session counter.
func (mp *MetricsProvider) IncrementActiveSessions(ctx context.Context) {
	mp.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active session counter.
func (mp *MetricsProvider) DecrementActiveSessions(ctx context.Context) {
	mp.activeSessions.Add(ctx, -1)
}

// NoopMetricsProvider is a no-op metrics provider for testing or when
// metrics are disabled.
type NoopMetricsProvider struct{}

// RecordInvocation is a no-op.
func (n *NoopMetricsProvider) RecordInvocation(ctx context.Context, toolName string, success bool, rowCount int, duration time.Duration) {
}

// RecordError is a no-op.
func (n *NoopMetricsProvider) RecordError(ctx context.Context, toolName string, errorType string) {}

// IncrementActiveSessions is a no-op.
func (n *NoopMetricsProvider) IncrementActiveSessions(ctx context.Context) {}

// DecrementActiveSessions is a no-op.
func (n *NoopMetricsProvider) DecrementActiveSessions(ctx context.Context) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordInvocation(ctx context.Context, toolName string, success bool, rowCount int, duration time.Duration)
	RecordError(ctx context.Context, toolName string, errorType string)
	IncrementActiveSessions(ctx context.Context)
	DecrementActiveSessions(ctx context.Context)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = (*NoopMetricsProvider)(nil)
)
