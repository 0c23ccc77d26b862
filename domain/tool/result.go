package tool

import "time"

// Result contains the output of a tool execution.
type Result struct {
	// Output is the rendered text returned to the client.
	Output string `json:"output"`

	// Rows is the number of result rows the output renders.
	Rows int `json:"rows"`

	// Duration is how long the execution took.
	Duration time.Duration `json:"duration"`
}

// NewResult creates a result with the given output.
func NewResult(output string) Result {
	return Result{Output: output}
}

// NewRowsResult creates a result that carries its row count for logging and
// metrics.
func NewRowsResult(output string, rows int) Result {
	return Result{Output: output, Rows: rows}
}
