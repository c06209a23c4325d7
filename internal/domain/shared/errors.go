package shared

import "fmt"

// DomainError represents a domain-level error with a stable code and
// optional structured details for rendering user-facing messages.
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// WithDetail returns a copy of the error carrying an extra detail field
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrOrderNotEditable    = NewDomainError("ORDER_NOT_EDITABLE", "Order items can only be modified in draft status")
)

// NewInvalidTransitionError reports an illegal order status transition,
// carrying both the current and the requested status.
func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("Cannot transition order from %s to %s", from, to),
		Details: map[string]any{"from": from, "to": to},
	}
}

// NewInsufficientStockError reports a stock shortage blocking an order
// confirmation or a manual stock-out.
func NewInsufficientStockError(sku string, requested, available int) *DomainError {
	return &DomainError{
		Code:    "INSUFFICIENT_STOCK",
		Message: fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", sku, requested, available),
		Details: map[string]any{"sku": sku, "requested": requested, "available": available},
	}
}

// NewNegativeStockError reports a movement that would drive stock below zero.
// Callers validate before recording, so reaching this from the order flow
// indicates a consistency fault rather than a user error.
func NewNegativeStockError(sku string, before, after int) *DomainError {
	return &DomainError{
		Code:    "NEGATIVE_STOCK",
		Message: fmt.Sprintf("Movement would drive stock of %s negative (%d -> %d)", sku, before, after),
		Details: map[string]any{"sku": sku, "stock_before": before, "stock_after": after},
	}
}

// NewValidationError reports a malformed or missing required input
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}
