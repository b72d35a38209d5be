// Package apperrors defines the error taxonomy shared by the catalog
// pipeline and the authorization gate. Every caller-facing failure
// carries a stable kind plus a human-readable message.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for programmatic matching.
type Kind string

const (
	// InvalidArgument marks malformed caller input, rejected before any
	// mutation is attempted.
	InvalidArgument Kind = "invalid_argument"
	// Unauthorized marks a missing or invalid session.
	Unauthorized Kind = "unauthorized"
	// Forbidden marks an authenticated caller without the admin role.
	Forbidden Kind = "forbidden"
	// NotFound marks a record id absent at mutation time.
	NotFound Kind = "not_found"
	// StoreError marks an underlying record-store failure, wrapped
	// without interpretation.
	StoreError Kind = "store_error"
	// ProviderError marks an identity-provider failure during login or
	// role checking.
	ProviderError Kind = "provider_error"
)

// Error is a kinded error. Err, when set, is the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// New returns a kinded error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a kinded error wrapping err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or the empty kind when err does
// not carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
