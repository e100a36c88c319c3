package errors

import (
	"errors"
	"fmt"
)

// SessionErrorKind classifies a session lifecycle failure.
type SessionErrorKind string

const (
	// SessionErrorNotInitialized indicates execute was called before initialize succeeded.
	SessionErrorNotInitialized SessionErrorKind = "not_initialized"
	// SessionErrorConfigMissing indicates a required config path was absent or empty.
	SessionErrorConfigMissing SessionErrorKind = "config_missing"
	// SessionErrorAlreadyCompleted indicates execute was called on a terminal session.
	SessionErrorAlreadyCompleted SessionErrorKind = "already_completed"
	// SessionErrorOther is the catch-all kind carrying a free-form message.
	SessionErrorOther SessionErrorKind = "other"
)

// SessionError describes a session lifecycle failure. Field is populated
// only for SessionErrorConfigMissing; Message is populated for SessionErrorOther.
type SessionError struct {
	kind    SessionErrorKind
	field   string
	message string
}

// NewSessionError constructs a SessionError of the given kind.
func NewSessionError(kind SessionErrorKind) *SessionError {
	if kind == "" {
		panic("errors: session error kind is required")
	}
	return &SessionError{kind: kind}
}

// NewConfigMissingError constructs a SessionErrorConfigMissing naming the
// absent or empty config field (for example, "session.orchestrator").
func NewConfigMissingError(field string) *SessionError {
	if field == "" {
		panic("errors: config missing error requires a field name")
	}
	return &SessionError{kind: SessionErrorConfigMissing, field: field}
}

// NewSessionOtherError constructs a SessionErrorOther carrying message.
func NewSessionOtherError(message string) *SessionError {
	if message == "" {
		panic("errors: session other error requires a message")
	}
	return &SessionError{kind: SessionErrorOther, message: message}
}

// Kind returns the session error classification.
func (e *SessionError) Kind() SessionErrorKind { return e.kind }

// Field returns the missing config field name; only set for SessionErrorConfigMissing.
func (e *SessionError) Field() string { return e.field }

// Error implements the error interface.
func (e *SessionError) Error() string {
	switch e.kind {
	case SessionErrorNotInitialized:
		return "session: not initialized"
	case SessionErrorConfigMissing:
		return fmt.Sprintf("session: config missing required field %q", e.field)
	case SessionErrorAlreadyCompleted:
		return "session: already completed"
	default:
		return fmt.Sprintf("session: %s", e.message)
	}
}

// AsSessionError returns the first SessionError in err's chain, if any.
func AsSessionError(err error) (*SessionError, bool) {
	var se *SessionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
