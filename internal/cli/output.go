package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Nothing to report
	ExitFailure      = 1 // Verification found uses not dominated by their definitions
	ExitCommandError = 2 // Unreadable document, malformed control flow, database errors
)

// ExitError carries the process exit status of a failed command. Err is
// the failure that caused it, if any, and is reachable through errors.As.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string { return e.Message }

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results either as text or wrapped in the
// JSON envelope.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// Response is the JSON envelope: status "ok" with Data, or "error" with
// Error.
type Response struct {
	Status string       `json:"status"`
	Data   any          `json:"data,omitempty"`
	Error  *ErrorReport `json:"error,omitempty"`
}

// ErrorReport describes a failed command. Function and Block locate
// analysis failures, Where locates document errors.
type ErrorReport struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Function   string            `json:"function,omitempty"`
	Block      string            `json:"block,omitempty"`
	Where      string            `json:"where,omitempty"`
	Violations []ViolationRecord `json:"violations,omitempty"`
}

func (r *ErrorReport) String() string {
	return r.Code + ": " + r.Message
}

// location is the text form of the report's position, or "".
func (r *ErrorReport) location() string {
	var parts []string
	if r.Where != "" {
		parts = append(parts, r.Where)
	}
	if r.Function != "" {
		parts = append(parts, "@"+r.Function)
	}
	if r.Block != "" {
		parts = append(parts, "block "+r.Block)
	}
	return strings.Join(parts, ", ")
}

// Emit writes data in the JSON envelope, or hands the writer to text.
func (f *OutputFormatter) Emit(data any, text func(w io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

// Fail writes r and returns the ExitError the command should return.
// Text output names the location only in verbose mode.
func (f *OutputFormatter) Fail(code int, r *ErrorReport, cause error) error {
	if f.Format == "json" {
		if err := json.NewEncoder(f.Writer).Encode(Response{Status: "error", Error: r}); err != nil {
			return &ExitError{Code: code, Message: r.String(), Err: errors.Join(cause, err)}
		}
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", r.Code, r.Message)
		if loc := r.location(); f.Verbose && loc != "" {
			fmt.Fprintf(f.Writer, "  at %s\n", loc)
		}
	}
	return &ExitError{Code: code, Message: r.String(), Err: cause}
}
