// Package middleware provides composable middleware for tool invocation.
package middleware

import (
	"context"
	"encoding/json"

	"github.com/nutridb/usda-mcp/domain/tool"
)

// ExecutionContext contains all information needed for middleware decisions.
type ExecutionContext struct {
	// InvocationID uniquely identifies this invocation.
	InvocationID string
	// Tool is the tool being executed.
	Tool tool.Tool
	// Input is the JSON argument bag for the tool.
	Input json.RawMessage
}

// Handler executes a tool and returns its result.
type Handler func(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error)

// Middleware wraps a Handler with additional behavior.
// Middleware can:
// - Execute code before the next handler
// - Execute code after the next handler
// - Short-circuit by not calling next
// - Transform results or errors
type Middleware func(next Handler) Handler

// Chain composes multiple middleware into a single middleware.
// Middleware are executed in the order provided, with each wrapping the next.
// For example, Chain(A, B, C) produces: A -> B -> C -> handler
func Chain(middlewares ...Middleware) Middleware {
	return func(final Handler) Handler {
		// Build chain from right to left so execution is left to right
		handler := final
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Noop returns a middleware that does nothing, just passes through.
func Noop() Middleware {
	return func(next Handler) Handler {
		return next
	}
}
