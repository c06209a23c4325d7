package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/catalog"
)

// CreateProductRequest is the payload for registering a product
type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required,max=50,sku"`
	Name        string `json:"name" binding:"required,max=255"`
	Category    string `json:"category" binding:"max=100"`
	Description string `json:"description"`
	Unit        string `json:"unit" binding:"max=20"`
	CostPrice   int64  `json:"cost_price" binding:"gte=0"`
	SellPrice   int64  `json:"sell_price" binding:"gte=0"`
	MinStock    int    `json:"min_stock" binding:"gte=0"`
}

// UpdateProductRequest carries partial product updates
type UpdateProductRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
	CostPrice   *int64  `json:"cost_price" binding:"omitempty,gte=0"`
	SellPrice   *int64  `json:"sell_price" binding:"omitempty,gte=0"`
	MinStock    *int    `json:"min_stock" binding:"omitempty,gte=0"`
}

// ProductResponse is the API shape of a product
type ProductResponse struct {
	ID           uuid.UUID `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	Unit         string    `json:"unit"`
	CostPrice    int64     `json:"cost_price"`
	SellPrice    int64     `json:"sell_price"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	LowStock     bool      `json:"low_stock"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToProductResponse converts the entity to its API shape
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Category:     product.Category,
		Description:  product.Description,
		Unit:         product.Unit,
		CostPrice:    product.CostPrice,
		SellPrice:    product.SellPrice,
		CurrentStock: product.CurrentStock,
		MinStock:     product.MinStock,
		LowStock:     product.IsLowStock(),
		IsActive:     product.IsActive,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}
