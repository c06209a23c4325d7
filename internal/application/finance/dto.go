package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/finance"
)

// CreatePaymentRequest is the payload for recording a payment
type CreatePaymentRequest struct {
	Type       string     `json:"type" binding:"required,oneof=incoming outgoing"`
	Method     string     `json:"method" binding:"required,oneof=cash bank other"`
	Amount     int64      `json:"amount" binding:"required,gt=0"`
	CustomerID *uuid.UUID `json:"customer_id"`
	SupplierID *uuid.UUID `json:"supplier_id"`
	OrderID    *uuid.UUID `json:"order_id"`
	Notes      string     `json:"notes"`
}

// PaymentResponse is the API shape of a payment
type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	PaymentNumber string     `json:"payment_number"`
	Type          string     `json:"type"`
	Method        string     `json:"method"`
	Amount        int64      `json:"amount"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	SupplierID    *uuid.UUID `json:"supplier_id,omitempty"`
	OrderID       *uuid.UUID `json:"order_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	PaymentDate   time.Time  `json:"payment_date"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToPaymentResponse converts the entity to its API shape
func ToPaymentResponse(payment *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		PaymentNumber: payment.PaymentNumber,
		Type:          payment.Type.String(),
		Method:        string(payment.Method),
		Amount:        payment.Amount,
		CustomerID:    payment.CustomerID,
		SupplierID:    payment.SupplierID,
		OrderID:       payment.OrderID,
		Notes:         payment.Notes,
		PaymentDate:   payment.PaymentDate,
		CreatedBy:     payment.CreatedBy,
		CreatedAt:     payment.CreatedAt,
	}
}

// ARAPSummary aggregates the open receivable and payable balances
type ARAPSummary struct {
	TotalReceivable int64 `json:"total_receivable"`
	ReceivableCount int64 `json:"receivable_count"`
	TotalPayable    int64 `json:"total_payable"`
	PayableCount    int64 `json:"payable_count"`
}
