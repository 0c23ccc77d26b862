package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	domainmw "github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/tool"
	mw "github.com/nutridb/usda-mcp/infrastructure/middleware"
)

// mockTool implements tool.Tool for testing.
type mockTool struct {
	name        string
	annotations tool.Annotations
	schema      tool.Schema
}

func (m *mockTool) Name() string                  { return m.name }
func (m *mockTool) Description() string           { return "mock tool" }
func (m *mockTool) InputSchema() tool.Schema      { return m.schema }
func (m *mockTool) OutputSchema() tool.Schema     { return tool.Schema{} }
func (m *mockTool) Annotations() tool.Annotations { return m.annotations }

func (m *mockTool) Execute(_ context.Context, _ json.RawMessage) (tool.Result, error) {
	return tool.NewResult("ok"), nil
}

// createTestHandler creates a simple handler for testing.
func createTestHandler(result tool.Result, err error) domainmw.Handler {
	return func(_ context.Context, _ *domainmw.ExecutionContext) (tool.Result, error) {
		return result, err
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("passes result through", func(t *testing.T) {
		t.Parallel()

		middleware := mw.Logging(mw.LoggingConfig{})

		execCtx := &domainmw.ExecutionContext{
			InvocationID: "inv-123",
			Tool:         &mockTool{name: "search_foods"},
			Input:        json.RawMessage(`{"keyword":"butter"}`),
		}

		expected := tool.NewRowsResult("01001 | Butter, salted", 1)
		handler := middleware(createTestHandler(expected, nil))

		result, err := handler(context.Background(), execCtx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Output != expected.Output {
			t.Errorf("got output %q, want %q", result.Output, expected.Output)
		}
		if result.Rows != 1 {
			t.Errorf("got rows %d, want 1", result.Rows)
		}
	})

	t.Run("passes error through", func(t *testing.T) {
		t.Parallel()

		middleware := mw.Logging(mw.LoggingConfig{})

		execCtx := &domainmw.ExecutionContext{
			InvocationID: "inv-456",
			Tool:         &mockTool{name: "execute_query"},
		}

		handlerErr := errors.New("query failed")
		handler := middleware(createTestHandler(tool.Result{}, handlerErr))

		_, err := handler(context.Background(), execCtx)
		if !errors.Is(err, handlerErr) {
			t.Fatalf("expected handler error, got %v", err)
		}
	})

	t.Run("logs input and output when enabled", func(t *testing.T) {
		t.Parallel()

		middleware := mw.Logging(mw.LoggingConfig{LogInput: true, LogOutput: true})

		execCtx := &domainmw.ExecutionContext{
			InvocationID: "inv-789",
			Tool:         &mockTool{name: "list_tables"},
			Input:        json.RawMessage(`{}`),
		}

		expected := tool.NewRowsResult("food_des\nnut_data", 2)
		handler := middleware(createTestHandler(expected, nil))

		result, err := handler(context.Background(), execCtx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Output != expected.Output {
			t.Errorf("output altered by logging middleware")
		}
	})
}
