package middleware

import (
	"context"
	"time"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/tool"
	"github.com/nutridb/usda-mcp/infrastructure/logging"
)

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	// LogInput logs the tool input (may contain sensitive data).
	LogInput bool
	// LogOutput logs the tool output (may be large).
	LogOutput bool
}

// Logging returns middleware that logs tool invocations.
func Logging(cfg LoggingConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			start := time.Now()

			// Log start
			entry := logging.Info().
				Add(logging.InvocationID(execCtx.InvocationID)).
				Add(logging.ToolName(execCtx.Tool.Name()))

			if cfg.LogInput && len(execCtx.Input) > 0 {
				entry = entry.Add(logging.Str("input", string(execCtx.Input)))
			}

			entry.Msg("invoking tool")

			// Execute
			result, err := next(ctx, execCtx)
			duration := time.Since(start)

			// Log result
			if err != nil {
				logging.Error().
					Add(logging.InvocationID(execCtx.InvocationID)).
					Add(logging.ToolName(execCtx.Tool.Name())).
					Add(logging.ErrorField(err)).
					Add(logging.Duration(duration)).
					Msg("tool invocation failed")
			} else {
				logEntry := logging.Info().
					Add(logging.InvocationID(execCtx.InvocationID)).
					Add(logging.ToolName(execCtx.Tool.Name())).
					Add(logging.Rows(result.Rows)).
					Add(logging.Duration(duration))

				if cfg.LogOutput && len(result.Output) > 0 {
					// Truncate large outputs
					output := result.Output
					if len(output) > 500 {
						output = output[:500] + "..."
					}
					logEntry = logEntry.Add(logging.Str("output", output))
				}

				logEntry.Msg("tool invoked")
			}

			return result, err
		}
	}
}
