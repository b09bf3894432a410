// Package errors provides the closed error taxonomy shared by every
// function handler. Handlers construct one of the four kinds; the HTTP
// boundary maps kinds to status codes and response envelopes, so no
// business code ever branches on an error message string.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a function error.
type Kind string

const (
	// KindValidation marks missing or invalid required input.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindNotFound marks a resolvable-but-absent related entity, such
	// as an order with no store or no assigned driver.
	KindNotFound Kind = "NOT_FOUND"
	// KindConfiguration marks missing server credentials. Messages of
	// this kind must never contain the credential itself.
	KindConfiguration Kind = "CONFIGURATION_ERROR"
	// KindPaymentProcessor marks a rejection or failure reported by the
	// external payment processor.
	KindPaymentProcessor Kind = "PAYMENT_PROCESSOR_ERROR"
)

// Error is a structured function error.
type Error struct {
	Kind      Kind                   `json:"kind"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError creates a validation error for a missing or
// invalid input field.
func NewValidationError(message string) *Error {
	return &Error{
		Kind:      KindValidation,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a not-found error for an absent related
// entity.
func NewNotFoundError(message string) *Error {
	return &Error{
		Kind:      KindNotFound,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates a configuration error. The message must
// name the missing setting, never its value.
func NewConfigurationError(message string) *Error {
	return &Error{
		Kind:      KindConfiguration,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewPaymentProcessorError wraps a processor-side failure, passing the
// processor's message through to the caller.
func NewPaymentProcessorError(message string, err error) *Error {
	e := &Error{
		Kind:      KindPaymentProcessor,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// KindOf extracts the kind from err, or empty when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
