package dto

import "net/http"

// Fallback error codes for non-domain failures
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 422, which keeps new business
// rule violations from surfacing as server faults.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ORDER_ITEM_NOT_FOUND": http.StatusNotFound,
	"ADDRESS_NOT_FOUND":    http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"DUPLICATE_REQUEST":    http.StatusConflict,

	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,

	"INVALID_INPUT":           http.StatusBadRequest,
	"BAD_REQUEST":             http.StatusBadRequest,
	"INVALID_QUANTITY":        http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD":  http.StatusBadRequest,
	"INVALID_OFFER":           http.StatusBadRequest,
	"INVALID_OFFER_WINDOW":    http.StatusBadRequest,
	"INVALID_COUPON":          http.StatusBadRequest,
	"INVALID_PRODUCT":         http.StatusBadRequest,
	"INVALID_VARIANT":         http.StatusBadRequest,
	"INVALID_CATEGORY":        http.StatusBadRequest,
	"INVALID_BRAND":           http.StatusBadRequest,
	"INVALID_AMOUNT":          http.StatusBadRequest,
	"INVALID_REASON":          http.StatusBadRequest,

	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes map to 422 Unprocessable Entity.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
