// Package errs defines the error taxonomy shared by gateways, page objects and scenarios.
package errs

import (
	"errors"
	"fmt"
)

// Code classifies why a page interaction failed.
type Code string

const (
	// Timeout: a waited-for condition never became true within the bound.
	Timeout Code = "timeout"
	// Interaction: the element was found but the action was rejected.
	Interaction Code = "interaction"
	// NotFound: the element vanished or was never rendered.
	NotFound Code = "not_found"
	// Driver: the automation session itself failed.
	Driver Code = "driver"
	// Assertion: a scenario expectation did not hold.
	Assertion Code = "assertion"
)

// Error is a coded interaction error.
type Error struct {
	Code    Code
	Op      string
	Locator string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Locator != "" {
		msg += " (" + e.Locator + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error for an operation.
func New(code Code, op, locator string) error {
	return &Error{Code: code, Op: op, Locator: locator}
}

// Wrap creates a coded error with a cause.
func Wrap(code Code, op, locator string, cause error) error {
	return &Error{Code: code, Op: op, Locator: locator, Err: cause}
}

// Assertf creates an assertion error with a formatted message.
func Assertf(format string, args ...any) error {
	return &Error{Code: Assertion, Err: fmt.Errorf(format, args...)}
}

// CodeOf returns the error code, defaulting to driver for untyped errors.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	return Driver
}

func IsTimeout(err error) bool     { return err != nil && CodeOf(err) == Timeout }
func IsNotFound(err error) bool    { return err != nil && CodeOf(err) == NotFound }
func IsInteraction(err error) bool { return err != nil && CodeOf(err) == Interaction }

// IsAbsent reports whether err only means the element is not on the page.
func IsAbsent(err error) bool {
	return IsTimeout(err) || IsNotFound(err)
}
