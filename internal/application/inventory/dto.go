package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/inventory"
)

// StockInRequest receives stock. When a supplier and unit cost are
// given the delivery is booked onto the supplier's payable balance.
type StockInRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	Quantity   int        `json:"quantity" binding:"required,gt=0"`
	SupplierID *uuid.UUID `json:"supplier_id"`
	UnitCost   *int64     `json:"unit_cost" binding:"omitempty,gte=0"`
	Reason     string     `json:"reason"`
}

// StockOutRequest issues stock manually (damage, samples, shrinkage)
type StockOutRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	Reason    string    `json:"reason" binding:"required"`
}

// AdjustRequest corrects stock to match a physical count. Quantity is
// signed.
type AdjustRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

// MovementResponse is the API shape of a stock movement
type MovementResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	SupplierID  *uuid.UUID `json:"supplier_id,omitempty"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	Type        string     `json:"type"`
	Quantity    int        `json:"quantity"`
	StockBefore int        `json:"stock_before"`
	StockAfter  int        `json:"stock_after"`
	Reason      string     `json:"reason,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToMovementResponse converts the entity to its API shape
func ToMovementResponse(movement *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          movement.ID,
		ProductID:   movement.ProductID,
		SupplierID:  movement.SupplierID,
		OrderID:     movement.OrderID,
		Type:        movement.Type.String(),
		Quantity:    movement.Quantity,
		StockBefore: movement.StockBefore,
		StockAfter:  movement.StockAfter,
		Reason:      movement.Reason,
		CreatedBy:   movement.CreatedBy,
		CreatedAt:   movement.CreatedAt,
	}
}
