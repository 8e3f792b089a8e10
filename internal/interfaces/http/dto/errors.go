package dto

import (
	"net/http"

	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
)

// Transport-level error codes. Domain codes come from shared and map through
// the same status table.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Validation-family errors are client mistakes (400); state-gate errors are
// well-formed requests the current order state rejects (422); conflicts from
// optimistic locking or the in-flight guard are 409; a remote store failure
// surfaces as a bad gateway so the client knows the save did not land.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	shared.CodeValidation:         http.StatusBadRequest,
	shared.CodeInvalidManualPrice: http.StatusBadRequest,

	shared.CodeNotFound: http.StatusNotFound,

	shared.CodeTransitionBlocked:  http.StatusUnprocessableEntity,
	shared.CodeDeleteNotConfirmed: http.StatusUnprocessableEntity,
	shared.CodeLastItem:           http.StatusUnprocessableEntity,
	shared.CodeInvalidState:       http.StatusUnprocessableEntity,

	shared.CodeConcurrencyConflict: http.StatusConflict,
	shared.CodeMutationInFlight:    http.StatusConflict,

	shared.CodeRemoteFailure:       http.StatusBadGateway,
	shared.CodeNotificationFailure: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
