package xerrors

import (
	"errors"
)

// Common reusable application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrInvalidPhone   = errors.New("invalid phone format")
	ErrInvalidValue   = errors.New("value out of range")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal server error")
)

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsDomain reports whether err is a business-rule violation as opposed to an
// infrastructure failure. Handlers use this to pick the response status.
func IsDomain(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidInput)
}
