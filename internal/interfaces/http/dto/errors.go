package dto

import (
	"net/http"
	"strings"
)

// Error codes used by the HTTP layer itself. Domain errors carry their
// own codes and are mapped to statuses below.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "ALREADY_EXISTS"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	ErrCodeTooLarge     = "REQUEST_TOO_LARGE"
)

// errorCodeStatus maps known error codes to HTTP status codes. Codes not
// listed here fall through to the suffix/prefix rules in HTTPStatusForCode.
var errorCodeStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	// Auth
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"EMAIL_TAKEN":         http.StatusConflict,
	"CANNOT_DELETE_SELF":  http.StatusConflict,

	// Cart and checkout
	"CART_NOT_FOUND":         http.StatusNotFound,
	"ITEM_NOT_IN_CART":       http.StatusNotFound,
	"PRODUCT_NOT_FOUND":      http.StatusNotFound,
	"EMPTY_ORDER":            http.StatusBadRequest,
	"MISSING_SHIPPING_INFO":  http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,

	// Business rules -> 422 Unprocessable Entity
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Favorites
	"NOT_FAVORITE": http.StatusNotFound,

	// Infrastructure
	"STORAGE_UNAVAILABLE": http.StatusServiceUnavailable,
}

// HTTPStatusForCode returns the HTTP status for a domain error code.
// Unlisted codes are classified by naming convention, and anything
// unrecognized is treated as an internal error.
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "INVALID_"), strings.HasPrefix(code, "MISSING_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "ALREADY_"):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
