// Package errs provides coded errors for the E2E suite so callers can
// distinguish which stage of a scenario failed without string matching.
package errs

import "errors"

// Code is a suite error code.
type Code string

const (
	// CredentialsRejected means a credential login was attempted and the
	// application refused it. Never mask this with cached session state.
	CredentialsRejected Code = "credentials_rejected"
	// Unattended means an interactive strategy was requested but the
	// process has no TTY to prompt on.
	Unattended Code = "unattended"
	// StateMissing means the cached session file does not exist.
	StateMissing Code = "state_missing"
	// StateExpired means the cached session loaded but the application
	// redirected back to its login route.
	StateExpired Code = "state_expired"
	// ElementMissing means a hard DOM dependency could not be located.
	ElementMissing Code = "element_missing"
	// StageTimeout means a bounded condition wait ran out of time.
	StageTimeout Code = "stage_timeout"
	// Internal is everything else.
	Internal Code = "internal"
)

// Error is a coded suite error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{Code: code, Message: message, Err: cause}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
