package dto

import "net/http"

// domainErrorStatus maps domain error codes to HTTP status codes.
// Unknown codes fall back to 500.
var domainErrorStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"VALIDATION_ERROR":     http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,
	"FORBIDDEN":            http.StatusForbidden,
	"INVALID_TRANSITION":   http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"ORDER_NOT_EDITABLE":   http.StatusUnprocessableEntity,
	"NEGATIVE_STOCK":       http.StatusUnprocessableEntity,
}

// StatusForCode returns the HTTP status for a domain error code
func StatusForCode(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
