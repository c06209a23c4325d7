package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/trade"
)

// CreateSalesOrderRequest is the payload for creating a draft order
type CreateSalesOrderRequest struct {
	CustomerID uuid.UUID                `json:"customer_id" binding:"required"`
	Items      []CreateSalesOrderItem   `json:"items" binding:"required,min=1,dive"`
	Discount   int64                    `json:"discount" binding:"gte=0"`
	Notes      string                   `json:"notes"`
}

// CreateSalesOrderItem is one requested line
type CreateSalesOrderItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	// UnitPrice overrides the product sell price when set; zero means
	// use the catalog price.
	UnitPrice *int64 `json:"unit_price" binding:"omitempty,gte=0"`
	Discount  int64  `json:"discount" binding:"gte=0"`
}

// UpdateSalesOrderRequest mutates a draft order
type UpdateSalesOrderRequest struct {
	Discount *int64  `json:"discount" binding:"omitempty,gte=0"`
	Notes    *string `json:"notes"`
}

// AddItemRequest adds a line to a draft order
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice *int64    `json:"unit_price" binding:"omitempty,gte=0"`
	Discount  int64     `json:"discount" binding:"gte=0"`
}

// UpdateItemRequest changes the quantity of a draft order line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// TransitionRequest asks for a status change
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipped completed cancelled"`
}

// SalesOrderItemResponse is the API shape of an order line
type SalesOrderItemResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	ProductSKU string    `json:"product_sku"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int64     `json:"unit_price"`
	Discount   int64     `json:"discount"`
	LineTotal  int64     `json:"line_total"`
}

// SalesOrderResponse is the API shape of an order
type SalesOrderResponse struct {
	ID              uuid.UUID                `json:"id"`
	OrderNumber     string                   `json:"order_number"`
	CustomerID      uuid.UUID                `json:"customer_id"`
	Status          string                   `json:"status"`
	Subtotal        int64                    `json:"subtotal"`
	Discount        int64                    `json:"discount"`
	Total           int64                    `json:"total"`
	PaidAmount      int64                    `json:"paid_amount"`
	RemainingAmount int64                    `json:"remaining_amount"`
	Notes           string                   `json:"notes,omitempty"`
	OrderDate       time.Time                `json:"order_date"`
	CreatedBy       uuid.UUID                `json:"created_by"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	Items           []SalesOrderItemResponse `json:"items"`
}

// ToSalesOrderResponse converts the aggregate to its API shape
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, SalesOrderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			ProductSKU: item.ProductSKU,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Discount:   item.Discount,
			LineTotal:  item.LineTotal,
		})
	}

	return SalesOrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Status:          order.Status.String(),
		Subtotal:        order.Subtotal,
		Discount:        order.Discount,
		Total:           order.Total,
		PaidAmount:      order.PaidAmount,
		RemainingAmount: order.RemainingAmount(),
		Notes:           order.Notes,
		OrderDate:       order.OrderDate,
		CreatedBy:       order.CreatedBy,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           items,
	}
}
