package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for the four error families. Validation errors are raised at
// the edit boundary before any mutation is attempted; transition errors leave
// the order untouched; remote failures trigger rollback of optimistic state;
// notification failures are warn-only and never roll anything back.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidManualPrice  = "INVALID_MANUAL_PRICE"
	CodeTransitionBlocked   = "TRANSITION_BLOCKED"
	CodeDeleteNotConfirmed  = "DELETE_NOT_CONFIRMED"
	CodeLastItem            = "LAST_ITEM"
	CodeRemoteFailure       = "REMOTE_FAILURE"
	CodeNotificationFailure = "NOTIFICATION_FAILURE"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeMutationInFlight    = "MUTATION_IN_FLIGHT"
	CodeInvalidState        = "INVALID_STATE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrMutationInFlight    = NewDomainError(CodeMutationInFlight, "Another mutation is in flight for this order")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NewValidationError creates a field-local validation error
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewTransitionBlocked creates an error for an unmet stage precondition
func NewTransitionBlocked(message string) *DomainError {
	return NewDomainError(CodeTransitionBlocked, message)
}

// NewRemoteFailure wraps a failed remote store call
func NewRemoteFailure(message string) *DomainError {
	return NewDomainError(CodeRemoteFailure, message)
}

// ErrorCode extracts the domain error code, or empty string for non-domain errors
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether err is a DomainError with the given code
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
