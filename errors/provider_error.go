// Package errors defines the kernel's closed error taxonomy: ProviderError,
// SessionError, HookError, ToolError, and ContextError. Each is a concrete
// struct with an unexported kind, a validating constructor, an Error()
// string, an Unwrap() error where a cause exists, and an AsXxxError helper
// built on errors.As — the same lineage as the teacher's model.ProviderError.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ProviderErrorKind classifies a model-provider failure into the small set
// of categories callers need for retry and UX decisions.
type ProviderErrorKind string

const (
	ProviderErrorRateLimit      ProviderErrorKind = "rate_limit"
	ProviderErrorAuthentication ProviderErrorKind = "authentication"
	ProviderErrorContextLength  ProviderErrorKind = "context_length"
	ProviderErrorContentFilter  ProviderErrorKind = "content_filter"
	ProviderErrorInvalidRequest ProviderErrorKind = "invalid_request"
	ProviderErrorUnavailable    ProviderErrorKind = "unavailable"
	ProviderErrorTimeout        ProviderErrorKind = "timeout"
	ProviderErrorOther          ProviderErrorKind = "other"
)

// ProviderError describes a failure returned by a mounted model provider.
// The carried fields vary by Kind; see SPEC_FULL.md §6 for the mapping.
type ProviderError struct {
	kind       ProviderErrorKind
	message    string
	provider   string
	retryAfter *time.Duration
	statusCode *int
	otherRetry bool
	cause      error
}

// NewProviderError constructs a ProviderError. message and kind are required;
// the remaining fields are optional and their applicability depends on kind.
func NewProviderError(kind ProviderErrorKind, message string, opts ...ProviderErrorOption) *ProviderError {
	if kind == "" {
		panic("errors: provider error kind is required")
	}
	if message == "" {
		panic("errors: provider error message is required")
	}
	e := &ProviderError{kind: kind, message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProviderErrorOption configures optional ProviderError fields.
type ProviderErrorOption func(*ProviderError)

// WithProvider attaches the provider identifier (for example, "bedrock").
func WithProvider(provider string) ProviderErrorOption {
	return func(e *ProviderError) { e.provider = provider }
}

// WithRetryAfter attaches a provider-supplied retry hint. Only meaningful
// on ProviderErrorRateLimit.
func WithRetryAfter(d time.Duration) ProviderErrorOption {
	return func(e *ProviderError) { e.retryAfter = &d }
}

// WithStatusCode attaches an HTTP-equivalent status code. Meaningful on
// ProviderErrorUnavailable and ProviderErrorOther.
func WithStatusCode(code int) ProviderErrorOption {
	return func(e *ProviderError) { e.statusCode = &code }
}

// WithOtherRetryable marks a ProviderErrorOther instance retryable. Ignored
// for every other kind, whose retryability is fixed by Retryable's rule.
func WithOtherRetryable(retryable bool) ProviderErrorOption {
	return func(e *ProviderError) { e.otherRetry = retryable }
}

// WithCause attaches the underlying error for errors.Unwrap/errors.As chains.
func WithCause(cause error) ProviderErrorOption {
	return func(e *ProviderError) { e.cause = cause }
}

// Kind returns the coarse-grained provider error classification.
func (e *ProviderError) Kind() ProviderErrorKind { return e.kind }

// Message returns the human-readable failure description.
func (e *ProviderError) Message() string { return e.message }

// Provider returns the provider identifier when known.
func (e *ProviderError) Provider() string { return e.provider }

// RetryAfter returns the provider's retry hint, if any.
func (e *ProviderError) RetryAfter() (time.Duration, bool) {
	if e.retryAfter == nil {
		return 0, false
	}
	return *e.retryAfter, true
}

// StatusCode returns the carried HTTP-equivalent status code, if any.
func (e *ProviderError) StatusCode() (int, bool) {
	if e.statusCode == nil {
		return 0, false
	}
	return *e.statusCode, true
}

// Retryable reports whether the call may succeed if retried unchanged.
// RateLimit, Unavailable, and Timeout are always retryable; Other is
// retryable exactly when constructed with WithOtherRetryable(true); every
// other kind is not retryable.
func (e *ProviderError) Retryable() bool {
	switch e.kind {
	case ProviderErrorRateLimit, ProviderErrorUnavailable, ProviderErrorTimeout:
		return true
	case ProviderErrorOther:
		return e.otherRetry
	default:
		return false
	}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	provider := e.provider
	if provider == "" {
		provider = "unknown"
	}
	return fmt.Sprintf("provider error: %s (%s): %s", e.kind, provider, e.message)
}

// Unwrap returns the underlying error, if any, to support errors.Is/As.
func (e *ProviderError) Unwrap() error { return e.cause }

// AsProviderError returns the first ProviderError in err's chain, if any.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
