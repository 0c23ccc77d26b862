package logging

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// testLogger creates a logger that writes to a buffer for testing
func testLogger() (*bolt.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := bolt.NewJSONHandler(buf)
	logger := bolt.New(handler).SetLevel(bolt.TRACE)
	return logger, buf
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Format = %s, want console", config.Format)
	}
	if config.Output != os.Stdout {
		t.Errorf("Output = %v, want os.Stdout", config.Output)
	}
}

func TestProductionConfig(t *testing.T) {
	t.Parallel()

	config := ProductionConfig()

	if config.Level != "info" {
		t.Errorf("Level = %s, want info", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("Format = %s, want json", config.Format)
	}
	if config.Output != os.Stdout {
		t.Errorf("Output = %v, want os.Stdout", config.Output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bolt.Level
	}{
		{"trace", bolt.TRACE},
		{"debug", bolt.DEBUG},
		{"info", bolt.INFO},
		{"warn", bolt.WARN},
		{"error", bolt.ERROR},
		{"unknown", bolt.INFO}, // Default
		{"", bolt.INFO},        // Empty defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInvocationIDField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := InvocationID("inv-123")
	if field == nil {
		t.Fatal("InvocationID() returned nil")
	}

	// Execute the field function
	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"invocation_id":"inv-123"`)) {
		t.Errorf("expected invocation_id field in output: %s", buf.String())
	}
}

func TestToolNameField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := ToolName("search_foods")
	if field == nil {
		t.Fatal("ToolName() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"tool":"search_foods"`)) {
		t.Errorf("expected tool field in output: %s", buf.String())
	}
}

func TestPackNameField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := PackName("foods")
	if field == nil {
		t.Fatal("PackName() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"pack":"foods"`)) {
		t.Errorf("expected pack field in output: %s", buf.String())
	}
}

func TestOperationField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Operation("search_foods")
	if field == nil {
		t.Fatal("Operation() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"operation":"search_foods"`)) {
		t.Errorf("expected operation field in output: %s", buf.String())
	}
}

func TestRowsField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Rows(42)
	if field == nil {
		t.Fatal("Rows() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"rows":42`)) {
		t.Errorf("expected rows field in output: %s", buf.String())
	}
}

func TestDurationField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Duration(100 * time.Millisecond)
	if field == nil {
		t.Fatal("Duration() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"duration_ms":100`)) {
		t.Errorf("expected duration_ms field in output: %s", buf.String())
	}
}

func TestDurationNsField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := DurationNs(100 * time.Millisecond)
	if field == nil {
		t.Fatal("DurationNs() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"duration_ns":100000000`)) {
		t.Errorf("expected duration_ns field in output: %s", buf.String())
	}
}

func TestErrorField(t *testing.T) {
	t.Parallel()

	t.Run("with error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		field := ErrorField(errors.New("test error"))
		if field == nil {
			t.Fatal("ErrorField() returned nil")
		}

		event := logger.Info()
		field(event).Msg("test")

		if !bytes.Contains(buf.Bytes(), []byte(`"error":"test error"`)) {
			t.Errorf("expected error field in output: %s", buf.String())
		}
	})

	t.Run("with nil error", func(t *testing.T) {
		t.Parallel()

		logger, buf := testLogger()
		field := ErrorField(nil)
		if field == nil {
			t.Fatal("ErrorField(nil) returned nil")
		}

		event := logger.Info()
		field(event).Msg("test")

		// Should not contain error field
		if bytes.Contains(buf.Bytes(), []byte(`"error"`)) {
			t.Errorf("unexpected error field in output: %s", buf.String())
		}
	})
}

func TestComponentField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Component("executor")
	if field == nil {
		t.Fatal("Component() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"component":"executor"`)) {
		t.Errorf("expected component field in output: %s", buf.String())
	}
}

func TestTransportField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Transport("stdio")
	if field == nil {
		t.Fatal("Transport() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"transport":"stdio"`)) {
		t.Errorf("expected transport field in output: %s", buf.String())
	}
}

func TestAddrField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Addr(":8080")
	if field == nil {
		t.Fatal("Addr() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"addr":":8080"`)) {
		t.Errorf("expected addr field in output: %s", buf.String())
	}
}

func TestHostField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Host("db.internal")
	if field == nil {
		t.Fatal("Host() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"host":"db.internal"`)) {
		t.Errorf("expected host field in output: %s", buf.String())
	}
}

func TestDatabaseField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Database("usda")
	if field == nil {
		t.Fatal("Database() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"database":"usda"`)) {
		t.Errorf("expected database field in output: %s", buf.String())
	}
}

func TestStrField(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()
	field := Str("custom_key", "custom_value")
	if field == nil {
		t.Fatal("Str() returned nil")
	}

	event := logger.Info()
	field(event).Msg("test")

	if !bytes.Contains(buf.Bytes(), []byte(`"custom_key":"custom_value"`)) {
		t.Errorf("expected custom_key field in output: %s", buf.String())
	}
}

// TestInit tests logger initialization
func TestInit(t *testing.T) {
	// Note: Can't test Init() properly due to sync.Once
	// Just test that Init doesn't panic with various configs
	t.Run("with nil output uses stdout", func(t *testing.T) {
		// Skip because sync.Once is already triggered
		t.Skip("sync.Once already triggered in other tests")
	})
}

// TestGet tests getting the default logger
func TestGet(t *testing.T) {
	logger := Get()
	if logger == nil {
		t.Fatal("Get() returned nil")
	}
}

// TestSetLevel tests changing the log level
func TestSetLevel(t *testing.T) {
	// Just verify it doesn't panic
	SetLevel("debug")
	SetLevel("info")
	SetLevel("error")
}

// TestLogEvent tests the LogEvent wrapper
func TestLogEvent(t *testing.T) {
	t.Parallel()

	logger, buf := testLogger()

	t.Run("Add chains fields", func(t *testing.T) {
		buf.Reset()
		event := &LogEvent{event: logger.Info()}
		event.Add(InvocationID("inv-1")).Add(ToolName("search_foods")).Msg("test")

		if !bytes.Contains(buf.Bytes(), []byte(`"invocation_id":"inv-1"`)) {
			t.Errorf("expected invocation_id field in output: %s", buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"tool":"search_foods"`)) {
			t.Errorf("expected tool field in output: %s", buf.String())
		}
	})

	t.Run("Send without message", func(t *testing.T) {
		buf.Reset()
		event := &LogEvent{event: logger.Info()}
		event.Add(InvocationID("inv-2")).Send()

		if !bytes.Contains(buf.Bytes(), []byte(`"invocation_id":"inv-2"`)) {
			t.Errorf("expected invocation_id field in output: %s", buf.String())
		}
	})
}

// TestNewEvent tests creating a new LogEvent wrapper
func TestNewEvent(t *testing.T) {
	logger, _ := testLogger()
	event := logger.Info()
	logEvent := NewEvent(event)

	if logEvent == nil {
		t.Fatal("NewEvent() returned nil")
	}
	if logEvent.event != event {
		t.Error("NewEvent() did not store the event correctly")
	}
}

// TestLogLevelHelpers tests the convenience methods
func TestLogLevelHelpers(t *testing.T) {
	// These call Get() which initializes the default logger
	// Just verify they don't panic and return non-nil

	// Redirect to discard to avoid polluting test output
	originalOutput := os.Stdout
	os.Stdout = os.NewFile(0, os.DevNull)
	defer func() { os.Stdout = originalOutput }()

	t.Run("Trace", func(t *testing.T) {
		event := Trace()
		if event == nil {
			t.Fatal("Trace() returned nil")
		}
	})

	t.Run("Debug", func(t *testing.T) {
		event := Debug()
		if event == nil {
			t.Fatal("Debug() returned nil")
		}
	})

	t.Run("Info", func(t *testing.T) {
		event := Info()
		if event == nil {
			t.Fatal("Info() returned nil")
		}
	})

	t.Run("Warn", func(t *testing.T) {
		event := Warn()
		if event == nil {
			t.Fatal("Warn() returned nil")
		}
	})

	t.Run("Error", func(t *testing.T) {
		event := Error()
		if event == nil {
			t.Fatal("Error() returned nil")
		}
	})

	// Note: Don't test Fatal() as it might call os.Exit
}

// Ensure io import is used
var _ io.Writer = (*bytes.Buffer)(nil)
