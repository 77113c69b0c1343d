package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_failed"
	CodeInternal           Code = "internal_error"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"

	// Workflow-specific conflict flavours. They map to 409 like CodeConflict but let
	// callers tell a duplicate unit claim apart from a replayed review action.
	CodeAlreadyProcessed Code = "already_processed"
	CodeAlreadyLinked    Code = "already_linked"
	CodeDuplicateAddress Code = "duplicate_address"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
// Details carries a structured payload (e.g. the conflicting resident) that the
// HTTP layer renders verbatim.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// WithDetails creates a domain error carrying a structured payload.
func WithDetails(code Code, msg string, details map[string]any) error {
	return &Error{Code: code, Message: msg, Details: details}
}

// Conflict creates a CodeConflict error carrying the conflicting entity.
func Conflict(msg string, details map[string]any) error {
	return WithDetails(CodeConflict, msg, details)
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code and details are preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Details: existing.Details, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// DetailsOf returns the structured payload of a domain error, or nil.
func DetailsOf(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
