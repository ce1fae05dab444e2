package jpqlcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // query did not parse, or the operation rejected it
	ExitCommandError = 2 // command misuse: bad path, bad flag combination
)

// ExitError carries a specific process exit code through cobra's error
// return path.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the process exit code from an error, defaulting
// to ExitFailure for anything that isn't an *ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles json vs text rendering for every subcommand.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool

	// RequestIDs, when set, stamps every json response with an id from
	// the generator. Text output never uses it; newFormatter always sets
	// it, and it is nil only when a caller builds the formatter without
	// one.
	RequestIDs RequestIDGenerator
}

// CLIResponse is the json output envelope.
type CLIResponse struct {
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     *CLIError `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// CLIError is the json error payload.
type CLIError struct {
	Message string `json:"message"`
	Query   string `json:"query,omitempty"`
}

// Success writes a successful result. In text mode, data must already
// be formatted for a human reader (a string, or something with a
// sensible String/Stringer-free fmt rendering).
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data, RequestID: f.requestID()})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error writes a failed result.
func (f *OutputFormatter) Error(message, query string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:    "error",
			Error:     &CLIError{Message: message, Query: query},
			RequestID: f.requestID(),
		})
	}
	fmt.Fprintf(f.Writer, "error: %s\n", message)
	return nil
}

func (f *OutputFormatter) requestID() string {
	if f.RequestIDs == nil {
		return ""
	}
	return f.RequestIDs.Generate()
}

// VerboseLog writes a diagnostic line to ErrWriter (or Writer, if unset)
// only when Verbose is enabled, so it never corrupts json output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
