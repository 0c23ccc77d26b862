package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/tool"
)

// TracingConfig configures the tracing middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer to use.
	TracerName string

	// Tracer is a custom tracer to use. If nil, a new tracer is created.
	Tracer trace.Tracer

	// RecordInput determines if tool input should be recorded as span attributes.
	RecordInput bool

	// RecordOutput determines if tool output should be recorded as span attributes.
	RecordOutput bool

	// MaxAttributeSize limits the size of recorded attributes.
	MaxAttributeSize int

	// SpanNamePrefix is prepended to span names.
	SpanNamePrefix string

	// AdditionalAttributes are added to all spans.
	AdditionalAttributes []attribute.KeyValue
}

// DefaultTracingConfig returns a sensible default configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName:       "usda-mcp",
		RecordInput:      true,
		RecordOutput:     false, // Output can be large
		MaxAttributeSize: 1024,
		SpanNamePrefix:   "tool.",
	}
}

// Tracing returns middleware that creates OpenTelemetry spans for tool
// invocations.
func Tracing(cfg TracingConfig) middleware.Middleware {
	tracer := cfg.Tracer
	if tracer == nil {
		tracerName := cfg.TracerName
		if tracerName == "" {
			tracerName = "usda-mcp"
		}
		tracer = otel.Tracer(tracerName)
	}

	maxSize := cfg.MaxAttributeSize
	if maxSize <= 0 {
		maxSize = 1024
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			spanName := execCtx.Tool.Name()
			if cfg.SpanNamePrefix != "" {
				spanName = cfg.SpanNamePrefix + spanName
			}

			ctx, span := tracer.Start(ctx, spanName,
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			attrs := []attribute.KeyValue{
				attribute.String("mcp.invocation_id", execCtx.InvocationID),
				attribute.String("tool.name", execCtx.Tool.Name()),
				attribute.String("tool.description", execCtx.Tool.Description()),
			}

			annotations := execCtx.Tool.Annotations()
			attrs = append(attrs,
				attribute.Bool("tool.read_only", annotations.ReadOnly),
				attribute.Bool("tool.destructive", annotations.Destructive),
				attribute.Bool("tool.idempotent", annotations.Idempotent),
				attribute.Bool("tool.cacheable", annotations.Cacheable),
				attribute.Int("tool.risk_level", int(annotations.RiskLevel)),
			)

			if cfg.RecordInput && len(execCtx.Input) > 0 {
				inputStr := string(execCtx.Input)
				attrs = append(attrs, attribute.String("tool.input", truncate(inputStr, maxSize)))
			}

			attrs = append(attrs, cfg.AdditionalAttributes...)

			span.SetAttributes(attrs...)

			result, err := next(ctx, execCtx)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")

				if cfg.RecordOutput && len(result.Output) > 0 {
					span.SetAttributes(attribute.String("tool.output", truncate(result.Output, maxSize)))
				}

				span.SetAttributes(
					attribute.Int64("tool.duration_ms", result.Duration.Milliseconds()),
					attribute.Int("tool.rows", result.Rows),
				)
			}

			return result, err
		}
	}
}

// TracingOption configures the tracing middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets a custom tracer.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithInputRecording enables or disables input recording.
func WithInputRecording(enabled bool) TracingOption {
	return func(c *TracingConfig) {
		c.RecordInput = enabled
	}
}

// WithOutputRecording enables or disables output recording.
func WithOutputRecording(enabled bool) TracingOption {
	return func(c *TracingConfig) {
		c.RecordOutput = enabled
	}
}

// WithMaxAttributeSize sets the maximum attribute size.
func WithMaxAttributeSize(size int) TracingOption {
	return func(c *TracingConfig) {
		c.MaxAttributeSize = size
	}
}

// WithSpanNamePrefix sets the span name prefix.
func WithSpanNamePrefix(prefix string) TracingOption {
	return func(c *TracingConfig) {
		c.SpanNamePrefix = prefix
	}
}

// WithAdditionalAttributes adds extra attributes to all spans.
func WithAdditionalAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AdditionalAttributes = append(c.AdditionalAttributes, attrs...)
	}
}

// NewTracing creates tracing middleware with the given options.
func NewTracing(opts ...TracingOption) middleware.Middleware {
	cfg := DefaultTracingConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Tracing(cfg)
}

// truncate truncates a string to the specified length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "...[truncated]"
}
