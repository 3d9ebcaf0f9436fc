package auth

import (
	"errors"
	"fmt"
)

// Kind partitions auth failures into the closed set the handlers match on.
type Kind int

const (
	// KindValidation is malformed or missing input; Fields carries detail.
	KindValidation Kind = iota
	// KindAuthentication covers bad credentials and invalid or expired
	// sessions. The message is deliberately generic so callers cannot tell
	// which factor failed.
	KindAuthentication
	// KindConflict is a duplicate email or username at signup.
	KindConflict
	// KindInfrastructure is a repository or hashing failure; logged
	// server-side, never exposed to the client.
	KindInfrastructure
)

// Error is the single error type crossing the auth package boundary.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewValidationError reports field-level input problems.
func NewValidationError(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
}

// NewAuthenticationError returns the one generic credentials failure.
func NewAuthenticationError() *Error {
	return &Error{Kind: KindAuthentication, Message: "invalid credentials"}
}

// NewConflictError reports a uniqueness conflict on the given field.
func NewConflictError(field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: "account already exists",
		Fields:  map[string]string{field: "already in use"},
	}
}

// NewInfrastructureError wraps a repository or primitive failure.
func NewInfrastructureError(cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: "internal error", cause: cause}
}

// KindOf extracts the Kind from err, defaulting to KindInfrastructure for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInfrastructure
}
