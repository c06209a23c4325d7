package partner

import (
	"time"

	"github.com/smeops/backend/internal/domain/shared"
)

// Customer represents a buyer carrying an accounts-receivable balance.
//
// TotalDebt is a signed running balance in minor currency units. Positive
// means the customer owes the business. It increases when an order is
// confirmed, decreases when an incoming payment is recorded, and decreases
// by the unpaid remainder when a confirmed order is cancelled. Only the
// order and payment workflows mutate it.
type Customer struct {
	shared.VersionedEntity
	Code      string `gorm:"size:50;uniqueIndex;not null"`
	Name      string `gorm:"size:255;not null;index"`
	Phone     string `gorm:"size:20"`
	Email     string `gorm:"size:255"`
	Address   string `gorm:"type:text"`
	Notes     string `gorm:"type:text"`
	TotalDebt int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with a zero balance
func NewCustomer(code, name string) (*Customer, error) {
	if code == "" {
		return nil, shared.NewValidationError("Customer code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("Customer code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("Customer name cannot be empty")
	}

	return &Customer{
		VersionedEntity: shared.NewVersionedEntity(),
		Code:            code,
		Name:            name,
	}, nil
}

// UpdateContact updates contact details
func (c *Customer) UpdateContact(name, phone, email, address, notes string) error {
	if name == "" {
		return shared.NewValidationError("Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Notes = notes
	c.UpdatedAt = time.Now()
	return nil
}

// IncurDebt increases the receivable balance (order confirmed, or a
// deleted incoming payment being reversed)
func (c *Customer) IncurDebt(amount int64) error {
	if amount <= 0 {
		return shared.NewValidationError("Debt amount must be positive")
	}
	c.TotalDebt += amount
	c.UpdatedAt = time.Now()
	return nil
}

// SettleDebt decreases the receivable balance (incoming payment, or the
// unpaid remainder of a cancelled order)
func (c *Customer) SettleDebt(amount int64) error {
	if amount <= 0 {
		return shared.NewValidationError("Settlement amount must be positive")
	}
	c.TotalDebt -= amount
	c.UpdatedAt = time.Now()
	return nil
}

// HasOutstandingDebt returns true if the customer owes the business
func (c *Customer) HasOutstandingDebt() bool {
	return c.TotalDebt > 0
}
