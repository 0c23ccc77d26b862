// Package middleware provides pre-built middleware implementations.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/tool"
)

// ValidationConfig configures the input validation middleware.
type ValidationConfig struct {
	// ValidateInput controls whether to validate tool inputs against schemas.
	// Default: true
	ValidateInput bool

	// RejectEmpty controls whether to reject empty/nil inputs.
	// Default: false (empty inputs are valid for argument-free tools)
	RejectEmpty bool
}

// DefaultValidationConfig returns a sensible default configuration.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		ValidateInput: true,
		RejectEmpty:   false,
	}
}

// Validation returns middleware that validates tool inputs against their
// declared JSON schemas.
//
// This ensures:
// - Input is valid JSON
// - Input conforms to the tool's declared input schema (when defined)
func Validation(cfg ValidationConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			if cfg.ValidateInput {
				if err := validateInput(execCtx.Tool, execCtx.Input, cfg.RejectEmpty); err != nil {
					return tool.Result{}, fmt.Errorf("%w: %v", tool.ErrInvalidInput, err)
				}
			}

			return next(ctx, execCtx)
		}
	}
}

// validateInput validates tool input against the tool's input schema.
func validateInput(t tool.Tool, input json.RawMessage, rejectEmpty bool) error {
	// Check for empty input
	if len(input) == 0 || string(input) == "null" {
		if rejectEmpty {
			return fmt.Errorf("input is empty or null")
		}
		// Empty input is allowed - some tools don't require input
		return nil
	}

	// Ensure input is valid JSON
	if !json.Valid(input) {
		return fmt.Errorf("input is not valid JSON")
	}

	// Validate against schema if defined
	schema := t.InputSchema()
	if !schema.IsEmpty() {
		if err := schema.Validate(input); err != nil {
			return fmt.Errorf("input schema validation failed: %w", err)
		}
	}

	return nil
}
