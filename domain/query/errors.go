package query

import (
	"errors"
	"fmt"
)

// ValidationError reports the first invalid argument of an operation. It is
// returned before any SQL is built or executed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// QueryError reports a failed statement execution. It carries the operation
// name and wraps the driver error. The message never includes connection
// credentials.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: query failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
