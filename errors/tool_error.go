package errors

import (
	"errors"
	"fmt"
)

// ToolErrorKind classifies a tool invocation failure.
type ToolErrorKind string

const (
	// ToolErrorExecutionFailed indicates the tool ran but failed.
	ToolErrorExecutionFailed ToolErrorKind = "execution_failed"
	// ToolErrorNotFound indicates no tool is mounted under the requested name.
	ToolErrorNotFound ToolErrorKind = "not_found"
	// ToolErrorOther is the catch-all kind.
	ToolErrorOther ToolErrorKind = "other"
)

// ToolError describes a tool invocation failure. Stdout, Stderr, and
// ExitCode are populated only for ToolErrorExecutionFailed, and only when
// the tool implementation captured them; Name is populated only for
// ToolErrorNotFound.
type ToolError struct {
	kind     ToolErrorKind
	message  string
	name     string
	stdout   string
	stderr   string
	exitCode *int
	cause    error
}

// NewToolError constructs a ToolError of the given kind with message.
func NewToolError(kind ToolErrorKind, message string) *ToolError {
	if kind == "" {
		panic("errors: tool error kind is required")
	}
	if message == "" {
		panic("errors: tool error message is required")
	}
	return &ToolError{kind: kind, message: message}
}

// NewToolNotFoundError constructs a ToolErrorNotFound naming the missing tool.
func NewToolNotFoundError(name string) *ToolError {
	if name == "" {
		panic("errors: tool not found error requires a name")
	}
	return &ToolError{kind: ToolErrorNotFound, name: name, message: fmt.Sprintf("tool %q not found", name)}
}

// WithStdout attaches captured stdout for post-mortem display.
func (e *ToolError) WithStdout(stdout string) *ToolError { e.stdout = stdout; return e }

// WithStderr attaches captured stderr for post-mortem display.
func (e *ToolError) WithStderr(stderr string) *ToolError { e.stderr = stderr; return e }

// WithExitCode attaches the tool process's exit code.
func (e *ToolError) WithExitCode(code int) *ToolError { e.exitCode = &code; return e }

// WithCause attaches the underlying error for errors.Is/As chains.
func (e *ToolError) WithCause(cause error) *ToolError { e.cause = cause; return e }

// Kind returns the tool error classification.
func (e *ToolError) Kind() ToolErrorKind { return e.kind }

// Name returns the missing tool's name; only set for ToolErrorNotFound.
func (e *ToolError) Name() string { return e.name }

// Stdout returns captured stdout, if any.
func (e *ToolError) Stdout() string { return e.stdout }

// Stderr returns captured stderr, if any.
func (e *ToolError) Stderr() string { return e.stderr }

// ExitCode returns the captured exit code, if any.
func (e *ToolError) ExitCode() (int, bool) {
	if e.exitCode == nil {
		return 0, false
	}
	return *e.exitCode, true
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("tool: %s: %s", e.kind, e.message)
}

// Unwrap returns the underlying error, if any.
func (e *ToolError) Unwrap() error { return e.cause }

// AsToolError returns the first ToolError in err's chain, if any.
func AsToolError(err error) (*ToolError, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
