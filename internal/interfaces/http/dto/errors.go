package dto

import (
	"net/http"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Error codes for failures raised by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// INSUFFICIENT_STOCK is absent: stock shortfalls are reported per item
// inside a 206 response by the checkout handler, and a race-losing
// reservation surfaces as a conflict.
var errorCodeHTTPStatus = map[string]int{
	shared.CodeParseError:         http.StatusBadRequest,
	shared.CodeCategoryMatchError: http.StatusBadRequest,
	shared.CodeValidationError:    http.StatusBadRequest,
	shared.CodeConflict:           http.StatusConflict,
	shared.CodeNotFound:           http.StatusNotFound,
	shared.CodeImportInProgress:   http.StatusConflict,
	shared.CodeInsufficientStock:  http.StatusConflict,

	"ALREADY_EXISTS":       http.StatusConflict,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_STATE":        http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, falling back
// to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
