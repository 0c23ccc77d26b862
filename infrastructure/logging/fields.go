package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for server logging.

// InvocationID adds an invocation ID field.
func InvocationID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("invocation_id", id)
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// PackName adds a pack name field.
func PackName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("pack", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Rows adds a result row count field.
func Rows(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("rows", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// DurationNs adds a duration field in nanoseconds.
func DurationNs(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ns", d.Nanoseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Transport adds a transport field (stdio or http).
func Transport(t string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("transport", t)
	}
}

// Addr adds a listen address field.
func Addr(addr string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("addr", addr)
	}
}

// Host adds a database host field.
func Host(host string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("host", host)
	}
}

// Database adds a database name field.
func Database(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("database", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an integer field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}
