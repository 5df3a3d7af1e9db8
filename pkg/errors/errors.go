package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks errors caused by a malformed or incomplete request.
var ErrInvalidInput = errors.New("invalid input")

// InputError carries a message that is safe to return to the caller.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string { return e.Message }

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Invalid returns an InputError with a formatted message.
func Invalid(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// Required returns the standard "<Label> is required" error for field.
func Required(field, label string) error {
	return &InputError{Field: field, Message: label + " is required"}
}

// Message returns the caller-facing message of an input error, or fallback.
func Message(err error, fallback string) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Message
	}
	return fallback
}
