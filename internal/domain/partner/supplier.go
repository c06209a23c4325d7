package partner

import (
	"time"

	"github.com/smeops/backend/internal/domain/shared"
)

// Supplier represents a vendor carrying an accounts-payable balance.
// TotalPayable is signed, in minor currency units; positive means the
// business owes the supplier. It increases on supplier-linked stock-in
// and decreases on outgoing payments.
type Supplier struct {
	shared.VersionedEntity
	Code         string `gorm:"size:50;uniqueIndex;not null"`
	Name         string `gorm:"size:255;not null;index"`
	Phone        string `gorm:"size:20"`
	Email        string `gorm:"size:255"`
	Address      string `gorm:"type:text"`
	Notes        string `gorm:"type:text"`
	TotalPayable int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with a zero balance
func NewSupplier(code, name string) (*Supplier, error) {
	if code == "" {
		return nil, shared.NewValidationError("Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewValidationError("Supplier code cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("Supplier name cannot be empty")
	}

	return &Supplier{
		VersionedEntity: shared.NewVersionedEntity(),
		Code:            code,
		Name:            name,
	}, nil
}

// UpdateContact updates contact details
func (s *Supplier) UpdateContact(name, phone, email, address, notes string) error {
	if name == "" {
		return shared.NewValidationError("Supplier name cannot be empty")
	}
	s.Name = name
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	return nil
}

// AddPayable increases the payable balance (stock received on credit, or
// a deleted outgoing payment being reversed)
func (s *Supplier) AddPayable(amount int64) error {
	if amount <= 0 {
		return shared.NewValidationError("Payable amount must be positive")
	}
	s.TotalPayable += amount
	s.UpdatedAt = time.Now()
	return nil
}

// SettlePayable decreases the payable balance (outgoing payment)
func (s *Supplier) SettlePayable(amount int64) error {
	if amount <= 0 {
		return shared.NewValidationError("Settlement amount must be positive")
	}
	s.TotalPayable -= amount
	s.UpdatedAt = time.Now()
	return nil
}

// HasOutstandingPayable returns true if the business owes the supplier
func (s *Supplier) HasOutstandingPayable() bool {
	return s.TotalPayable > 0
}
