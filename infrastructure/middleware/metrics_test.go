package middleware_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainmw "github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/query"
	"github.com/nutridb/usda-mcp/domain/tool"
	mw "github.com/nutridb/usda-mcp/infrastructure/middleware"
)

// mockMetricsProvider records metric calls for verification.
type mockMetricsProvider struct {
	mu sync.Mutex

	invocations []invocationRecord
	errors      []errorRecord
	increments  int
	decrements  int
}

type invocationRecord struct {
	toolName string
	success  bool
	rows     int
	duration time.Duration
}

type errorRecord struct {
	toolName  string
	errorType string
}

func (m *mockMetricsProvider) RecordInvocation(_ context.Context, toolName string, success bool, rowCount int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invocations = append(m.invocations, invocationRecord{
		toolName: toolName,
		success:  success,
		rows:     rowCount,
		duration: duration,
	})
}

func (m *mockMetricsProvider) RecordError(_ context.Context, toolName string, errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, errorRecord{toolName: toolName, errorType: errorType})
}

func (m *mockMetricsProvider) IncrementActiveSessions(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.increments++
}

func (m *mockMetricsProvider) DecrementActiveSessions(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decrements++
}

func TestMetrics_RecordsSuccessfulInvocation(t *testing.T) {
	t.Parallel()

	provider := &mockMetricsProvider{}
	middleware := mw.Metrics(mw.MetricsConfig{Provider: provider})

	execCtx := &domainmw.ExecutionContext{
		InvocationID: "inv-1",
		Tool:         &mockTool{name: "search_foods"},
	}

	handler := middleware(createTestHandler(tool.NewRowsResult("rows", 12), nil))

	_, err := handler(context.Background(), execCtx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.invocations) != 1 {
		t.Fatalf("expected 1 invocation record, got %d", len(provider.invocations))
	}
	rec := provider.invocations[0]
	if rec.toolName != "search_foods" {
		t.Errorf("toolName = %q", rec.toolName)
	}
	if !rec.success {
		t.Error("expected success = true")
	}
	if rec.rows != 12 {
		t.Errorf("rows = %d, want 12", rec.rows)
	}
	if len(provider.errors) != 0 {
		t.Errorf("expected no error records, got %d", len(provider.errors))
	}
}

func TestMetrics_ClassifiesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantClass string
	}{
		{
			name:      "validation error",
			err:       &query.ValidationError{Field: "keyword", Reason: "must not be empty"},
			wantClass: "validation",
		},
		{
			name:      "invalid input",
			err:       errors.Join(tool.ErrInvalidInput, errors.New("bad JSON")),
			wantClass: "validation",
		},
		{
			name:      "query error",
			err:       &query.QueryError{Op: "execute_query", Err: errors.New("connection refused")},
			wantClass: "query",
		},
		{
			name:      "internal error",
			err:       errors.New("boom"),
			wantClass: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := &mockMetricsProvider{}
			middleware := mw.Metrics(mw.MetricsConfig{Provider: provider})

			execCtx := &domainmw.ExecutionContext{
				InvocationID: "inv-2",
				Tool:         &mockTool{name: "execute_query"},
			}

			handler := middleware(createTestHandler(tool.Result{}, tt.err))

			_, err := handler(context.Background(), execCtx)
			if err == nil {
				t.Fatal("expected error")
			}

			if len(provider.invocations) != 1 {
				t.Fatalf("expected 1 invocation record, got %d", len(provider.invocations))
			}
			if provider.invocations[0].success {
				t.Error("expected success = false")
			}
			if len(provider.errors) != 1 {
				t.Fatalf("expected 1 error record, got %d", len(provider.errors))
			}
			if provider.errors[0].errorType != tt.wantClass {
				t.Errorf("errorType = %q, want %q", provider.errors[0].errorType, tt.wantClass)
			}
		})
	}
}

func TestMetrics_NilProviderDoesNotPanic(t *testing.T) {
	t.Parallel()

	middleware := mw.Metrics(mw.MetricsConfig{})

	execCtx := &domainmw.ExecutionContext{
		InvocationID: "inv-3",
		Tool:         &mockTool{name: "list_tables"},
	}

	handler := middleware(createTestHandler(tool.NewResult("ok"), nil))

	if _, err := handler(context.Background(), execCtx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
