package catalog

import (
	"time"

	"github.com/smeops/backend/internal/domain/shared"
)

// Product represents a sellable item tracked in inventory.
//
// CurrentStock is the running on-hand quantity. It must only be mutated
// through inventory.Record, which pairs every change with an immutable
// stock movement row; the order workflow and the manual stock endpoints
// both go through that path.
type Product struct {
	shared.VersionedEntity
	SKU          string `gorm:"size:50;uniqueIndex;not null"`
	Name         string `gorm:"size:255;not null"`
	Category     string `gorm:"size:100;index"`
	Description  string `gorm:"type:text"`
	Unit         string `gorm:"size:20;not null;default:pcs"`
	CostPrice    int64  `gorm:"not null;default:0"` // minor currency units
	SellPrice    int64  `gorm:"not null;default:0"` // minor currency units
	CurrentStock int    `gorm:"not null;default:0"`
	MinStock     int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product with zero stock
func NewProduct(sku, name, category, unit string, costPrice, sellPrice int64) (*Product, error) {
	if sku == "" {
		return nil, shared.NewValidationError("SKU cannot be empty")
	}
	if len(sku) > 50 {
		return nil, shared.NewValidationError("SKU cannot exceed 50 characters")
	}
	if name == "" {
		return nil, shared.NewValidationError("Product name cannot be empty")
	}
	if costPrice < 0 {
		return nil, shared.NewValidationError("Cost price cannot be negative")
	}
	if sellPrice < 0 {
		return nil, shared.NewValidationError("Sell price cannot be negative")
	}
	if unit == "" {
		unit = "pcs"
	}

	return &Product{
		VersionedEntity: shared.NewVersionedEntity(),
		SKU:             sku,
		Name:            name,
		Category:        category,
		Unit:            unit,
		CostPrice:       costPrice,
		SellPrice:       sellPrice,
		CurrentStock:    0,
		MinStock:        0,
		IsActive:        true,
	}, nil
}

// UpdatePrices updates cost and sell prices
func (p *Product) UpdatePrices(costPrice, sellPrice int64) error {
	if costPrice < 0 {
		return shared.NewValidationError("Cost price cannot be negative")
	}
	if sellPrice < 0 {
		return shared.NewValidationError("Sell price cannot be negative")
	}
	p.CostPrice = costPrice
	p.SellPrice = sellPrice
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates descriptive fields
func (p *Product) UpdateDetails(name, category, description, unit string) error {
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	p.Name = name
	p.Category = category
	p.Description = description
	if unit != "" {
		p.Unit = unit
	}
	p.UpdatedAt = time.Now()
	return nil
}

// SetMinStock sets the low-stock alert threshold
func (p *Product) SetMinStock(minStock int) error {
	if minStock < 0 {
		return shared.NewValidationError("Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the product. Products are never removed so that
// movements and order lines keep valid references.
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Reactivate makes the product sellable again
func (p *Product) Reactivate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// IsLowStock returns true if on-hand stock is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// CanFulfill returns true if on-hand stock covers the requested quantity
func (p *Product) CanFulfill(quantity int) bool {
	return p.CurrentStock >= quantity
}
