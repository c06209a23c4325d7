package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/shared"
)

// PaymentType distinguishes money received from money paid out
type PaymentType string

const (
	// PaymentTypeIncoming records money received from a customer
	PaymentTypeIncoming PaymentType = "incoming"
	// PaymentTypeOutgoing records money paid to a supplier
	PaymentTypeOutgoing PaymentType = "outgoing"
)

// IsValid checks if the payment type is a known member
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeIncoming || t == PaymentTypeOutgoing
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// PaymentMethod is how the money moved
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodOther PaymentMethod = "other"
)

// IsValid checks if the payment method is a known member
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodOther:
		return true
	}
	return false
}

// Payment records one money transfer. Incoming payments reference a
// customer (and optionally one of their orders), outgoing payments
// reference a supplier; the two references are mutually exclusive.
// Deleting a payment reverses its balance effects using the amounts
// stored here, so rows carry everything needed for an exact reversal.
type Payment struct {
	shared.BaseEntity
	PaymentNumber string        `gorm:"size:50;uniqueIndex;not null"`
	Type          PaymentType   `gorm:"size:10;not null;index"`
	Method        PaymentMethod `gorm:"size:10;not null"`
	CustomerID    *uuid.UUID    `gorm:"type:uuid;index"`
	SupplierID    *uuid.UUID    `gorm:"type:uuid;index"`
	OrderID       *uuid.UUID    `gorm:"type:uuid;index"`
	CreatedBy     uuid.UUID     `gorm:"type:uuid;not null"`
	Amount        int64         `gorm:"not null"` // minor currency units
	Notes         string        `gorm:"type:text"`
	PaymentDate   time.Time     `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment after validating the type-specific
// counterparty wiring.
func NewPayment(paymentNumber string, paymentType PaymentType, method PaymentMethod, amount int64, createdBy uuid.UUID) (*Payment, error) {
	if paymentNumber == "" {
		return nil, shared.NewValidationError("Payment number cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewValidationError("Unknown payment type")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Unknown payment method")
	}
	if amount <= 0 {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		PaymentNumber: paymentNumber,
		Type:          paymentType,
		Method:        method,
		Amount:        amount,
		CreatedBy:     createdBy,
		PaymentDate:   time.Now(),
	}, nil
}

// AttachCustomer wires an incoming payment to its customer and,
// optionally, one of that customer's orders.
func (p *Payment) AttachCustomer(customerID uuid.UUID, orderID *uuid.UUID) error {
	if p.Type != PaymentTypeIncoming {
		return shared.NewValidationError("Only incoming payments reference a customer")
	}
	if customerID == uuid.Nil {
		return shared.NewValidationError("Customer ID cannot be empty")
	}
	p.CustomerID = &customerID
	p.OrderID = orderID
	return nil
}

// AttachSupplier wires an outgoing payment to its supplier
func (p *Payment) AttachSupplier(supplierID uuid.UUID) error {
	if p.Type != PaymentTypeOutgoing {
		return shared.NewValidationError("Only outgoing payments reference a supplier")
	}
	if supplierID == uuid.Nil {
		return shared.NewValidationError("Supplier ID cannot be empty")
	}
	p.SupplierID = &supplierID
	return nil
}

// Validate checks the counterparty invariant before persistence
func (p *Payment) Validate() error {
	switch p.Type {
	case PaymentTypeIncoming:
		if p.CustomerID == nil {
			return shared.NewValidationError("Incoming payment requires a customer")
		}
		if p.SupplierID != nil {
			return shared.NewValidationError("Incoming payment cannot reference a supplier")
		}
	case PaymentTypeOutgoing:
		if p.SupplierID == nil {
			return shared.NewValidationError("Outgoing payment requires a supplier")
		}
		if p.CustomerID != nil || p.OrderID != nil {
			return shared.NewValidationError("Outgoing payment cannot reference a customer or order")
		}
	default:
		return shared.NewValidationError("Unknown payment type")
	}
	return nil
}
