package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/shared"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	// MovementTypeIn records stock received (supplier delivery, cancelled order restock)
	MovementTypeIn MovementType = "in"
	// MovementTypeOut records stock leaving (order confirmation, manual issue)
	MovementTypeOut MovementType = "out"
	// MovementTypeAdjust records a signed correction from a stock count
	MovementTypeAdjust MovementType = "adjust"
)

// IsValid checks if the movement type is a known member
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// StockMovement is an immutable, append-only record of one change to a
// product's on-hand quantity. Both the before and after quantities are
// captured at write time so the ledger can be reconstructed for audit.
// Rows are never updated or deleted.
type StockMovement struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	SupplierID  *uuid.UUID   `gorm:"type:uuid;index"`
	OrderID     *uuid.UUID   `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID    `gorm:"type:uuid;not null"`
	Type        MovementType `gorm:"size:10;not null;index"`
	Quantity    int          `gorm:"not null"`
	StockBefore int          `gorm:"not null"`
	StockAfter  int          `gorm:"not null"`
	Reason      string       `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// Refs carries optional back-references from a movement to its source
type Refs struct {
	OrderID    *uuid.UUID
	SupplierID *uuid.UUID
}

// Record is the single permitted path for mutating a product's stock.
// It snapshots the current quantity, applies the movement, rejects any
// result below zero, and writes the new quantity back to the product.
// The returned movement must be persisted in the same transaction as the
// product so the snapshot and the mutation commit together.
//
// For "out" movements callers are expected to have checked availability
// already (the order state machine does); the check here is a defensive
// invariant, not the primary gate.
func Record(product *catalog.Product, movementType MovementType, quantity int, reason string, refs Refs, actorID uuid.UUID) (*StockMovement, error) {
	if product == nil {
		return nil, shared.ErrNotFound
	}
	if !movementType.IsValid() {
		return nil, shared.NewValidationError("Unknown movement type")
	}
	if movementType != MovementTypeAdjust && quantity <= 0 {
		return nil, shared.NewValidationError("Movement quantity must be positive")
	}
	if movementType == MovementTypeAdjust && quantity == 0 {
		return nil, shared.NewValidationError("Adjustment quantity cannot be zero")
	}

	before := product.CurrentStock
	var after int
	switch movementType {
	case MovementTypeIn:
		after = before + quantity
	case MovementTypeOut:
		after = before - quantity
	case MovementTypeAdjust:
		after = before + quantity
	}

	if after < 0 {
		return nil, shared.NewNegativeStockError(product.SKU, before, after)
	}

	product.CurrentStock = after
	product.UpdatedAt = time.Now()
	product.IncrementVersion()

	return &StockMovement{
		ID:          uuid.New(),
		ProductID:   product.ID,
		SupplierID:  refs.SupplierID,
		OrderID:     refs.OrderID,
		CreatedBy:   actorID,
		Type:        movementType,
		Quantity:    quantity,
		StockBefore: before,
		StockAfter:  after,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}, nil
}

// SignedQuantity returns the movement's effect on stock as a signed value
func (m *StockMovement) SignedQuantity() int {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}
