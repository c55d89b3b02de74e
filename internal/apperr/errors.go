// Package apperr defines the application error taxonomy shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound signals that the targeted record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken signals a duplicate account email, enforced by the
	// storage-layer unique index.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials is the single generic login failure. It covers
	// both unknown email and wrong password so callers cannot enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized signals a missing, expired, or unknown session.
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation is a user-correctable input error. Its message is already
// user-safe and is surfaced verbatim at the API boundary.
type Validation struct {
	Message string
}

func (e *Validation) Error() string { return e.Message }

// NewValidation wraps a user-facing message as a validation error.
func NewValidation(msg string) error {
	return &Validation{Message: msg}
}

// ValidationMessage extracts the user-facing message from a validation
// error, reporting whether err is one.
func ValidationMessage(err error) (string, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v.Message, true
	}
	return "", false
}
