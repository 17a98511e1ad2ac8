// Package apperr defines the CLI-level error categories used across ratingdash.
//
// Error taxonomy
//
//	UserError    – bad flag values, out-of-range movie features, unusable API
//	               URL. The CLI prints only the message. Exit code: 1.
//
//	ErrCancelled – the user aborted an interactive form or the dashboard menu.
//	               Exit code: 0 (not a failure).
//
// Failures talking to the prediction service never surface as Go errors from
// the API client; they travel as apiclient.Outcome values and are rendered by
// the interpret package. Commands turn a rendered failure into ErrActionFailed
// so the process exit code reflects it.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation. The CLI exits 0 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// ErrActionFailed reports that a dashboard action completed with a rendered
// failure (service down, request rejected, malformed response).
var ErrActionFailed = errors.New("action failed")

// UserError represents an error caused by invalid or missing user input.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// Failed wraps a failure description so that errors.Is(err, ErrActionFailed) holds.
func Failed(kind string) error {
	return fmt.Errorf("%w: %s", ErrActionFailed, kind)
}
