package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/query"
	"github.com/nutridb/usda-mcp/domain/tool"
	"github.com/nutridb/usda-mcp/infrastructure/telemetry"
)

// MetricsConfig configures the metrics middleware.
type MetricsConfig struct {
	// Provider is the metrics provider to use.
	Provider telemetry.Metrics
}

// Metrics creates a middleware that records metrics for tool invocations.
//
// This middleware records:
// - Invocation count (with tool name and success attributes)
// - Invocation duration histogram
// - Result row counts
// - Errors classified by kind (validation, query, internal)
func Metrics(config MetricsConfig) middleware.Middleware {
	if config.Provider == nil {
		config.Provider = &telemetry.NoopMetricsProvider{}
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			start := time.Now()

			result, err := next(ctx, execCtx)

			duration := time.Since(start)
			toolName := execCtx.Tool.Name()

			config.Provider.RecordInvocation(ctx, toolName, err == nil, result.Rows, duration)
			if err != nil {
				config.Provider.RecordError(ctx, toolName, errorClass(err))
			}

			return result, err
		}
	}
}

// errorClass buckets an invocation error for metric attributes.
func errorClass(err error) string {
	var qErr *query.QueryError
	switch {
	case query.IsValidation(err), errors.Is(err, tool.ErrInvalidInput):
		return "validation"
	case errors.As(err, &qErr):
		return "query"
	default:
		return "internal"
	}
}
