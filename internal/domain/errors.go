package domain

import (
	"errors"
	"fmt"
)

// Application error codes
const (
	EINVALID      = "invalid"      // Invalid input or validation failure
	EUNAUTHORIZED = "unauthorized" // Authentication required
	EFORBIDDEN    = "forbidden"    // Permission denied
	ENOTFOUND     = "not_found"    // Resource not found
	EMETHOD       = "method"       // Method not allowed on the resource
	ERATELIMIT    = "rate_limit"   // Rate limit exceeded
	EUNAVAILABLE  = "unavailable"  // Upstream or dependency unavailable
	EINTERNAL     = "internal"     // Internal server error
)

// genericMessage is shown in place of internal error details.
const genericMessage = "An error occurred. Please try again later."

// Error is an application error carrying a machine-readable code.
type Error struct {
	Code    string // Machine-readable error code
	Op      string // Operation that failed (e.g. "contact.submit")
	Message string // Human-readable message, safe to show to users
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a new Error with the given code, operation, and formatted message.
func Errorf(code, op, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a code, operation and user-facing message to err.
func Wrap(err error, code, op, message string) *Error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the code of the first *Error in the chain.
// Validation errors report EINVALID; anything else is EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return EINVALID
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns a message that is safe to show to users.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Summary()
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return genericMessage
}

// ErrorOp returns the operation of the first *Error in the chain, if any.
func ErrorOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Op
	}
	return ""
}

// Invalid creates a validation error without field detail.
func Invalid(op, message string) *Error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(err error, op string) *Error {
	return &Error{Code: EINTERNAL, Op: op, Message: genericMessage, Err: err}
}

// ValidationError collects field-level validation failures.
// Fields maps a field name to the first message recorded for it; Order keeps
// the order in which fields failed so the summary is stable.
type ValidationError struct {
	Op     string
	Fields map[string]string
	Order  []string
}

// NewValidationError creates an empty ValidationError for op.
func NewValidationError(op string) *ValidationError {
	return &ValidationError{Op: op, Fields: make(map[string]string)}
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return "validation failed: " + e.Summary()
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Op, e.Summary())
}

// Add records message for field unless the field already failed.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
	e.Order = append(e.Order, field)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Order) > 0
}

// Summary returns the message of the first failing field.
func (e *ValidationError) Summary() string {
	if len(e.Order) == 0 {
		return "Validation failed"
	}
	return e.Fields[e.Order[0]]
}

// Err returns e as an error when it holds failures and nil otherwise.
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
