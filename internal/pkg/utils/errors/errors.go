// Package errors provides error helpers used across the project:
// multi errors, nested errors with a prefix and unified formatting.
package errors

import (
	stderrors "errors"
	"fmt"
)

func New(text string) error {
	return stderrors.New(text)
}

// Errorf formats an error, the %w verb is supported.
func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}
