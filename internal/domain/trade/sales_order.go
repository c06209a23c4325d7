package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is one-directional with no cycles:
//
//	draft     -> confirmed, cancelled
//	confirmed -> shipped, cancelled
//	shipped   -> completed
//	completed, cancelled are terminal
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false
	}
	return false
}

// SalesOrderItem represents a line item in a sales order. UnitPrice is a
// snapshot taken at order time and does not track later product price
// changes. Items are immutable once the order leaves draft.
type SalesOrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductSKU string    `gorm:"size:50;not null"`
	Quantity   int       `gorm:"not null"`
	UnitPrice  int64     `gorm:"not null"` // minor currency units
	Discount   int64     `gorm:"not null;default:0"`
	LineTotal  int64     `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// NewSalesOrderItem creates a new order line
func NewSalesOrderItem(orderID, productID uuid.UUID, productSKU string, quantity int, unitPrice, discount int64) (*SalesOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	if unitPrice < 0 {
		return nil, shared.NewValidationError("Unit price cannot be negative")
	}
	if discount < 0 {
		return nil, shared.NewValidationError("Line discount cannot be negative")
	}
	lineTotal := int64(quantity)*unitPrice - discount
	if lineTotal < 0 {
		return nil, shared.NewValidationError("Line discount cannot exceed line amount")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		ProductID:  productID,
		ProductSKU: productSKU,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Discount:   discount,
		LineTotal:  lineTotal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the line total
func (i *SalesOrderItem) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	lineTotal := int64(quantity)*i.UnitPrice - i.Discount
	if lineTotal < 0 {
		return shared.NewValidationError("Line discount cannot exceed line amount")
	}
	i.Quantity = quantity
	i.LineTotal = lineTotal
	i.UpdatedAt = time.Now()
	return nil
}

// SalesOrder is the aggregate root for the order lifecycle. Totals are
// always recomputed from the lines, never set directly, and the order row
// is soft-deleted at most (cancelled orders keep their ledger history).
type SalesOrder struct {
	shared.VersionedEntity
	OrderNumber string           `gorm:"size:50;uniqueIndex;not null"`
	CustomerID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	CreatedBy   uuid.UUID        `gorm:"type:uuid;not null"`
	Status      OrderStatus      `gorm:"size:20;not null;default:draft;index"`
	Subtotal    int64            `gorm:"not null;default:0"`
	Discount    int64            `gorm:"not null;default:0"`
	Total       int64            `gorm:"not null;default:0"`
	PaidAmount  int64            `gorm:"not null;default:0"`
	Notes       string           `gorm:"type:text"`
	OrderDate   time.Time        `gorm:"not null;index"`
	DeletedAt   gorm.DeletedAt   `gorm:"index"`
	Items       []SalesOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new order in draft status
func NewSalesOrder(orderNumber string, customerID, createdBy uuid.UUID) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewValidationError("Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Customer ID cannot be empty")
	}

	return &SalesOrder{
		VersionedEntity: shared.NewVersionedEntity(),
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		CreatedBy:       createdBy,
		Status:          OrderStatusDraft,
		OrderDate:       time.Now(),
		Items:           make([]SalesOrderItem, 0),
	}, nil
}

// AddItem adds a new line to the order. Only allowed in draft status.
func (o *SalesOrder) AddItem(productID uuid.UUID, productSKU string, quantity int, unitPrice, discount int64) (*SalesOrderItem, error) {
	if !o.CanModify() {
		return nil, shared.ErrOrderNotEditable
	}
	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewValidationError("Product already exists in order, update the line instead")
		}
	}

	item, err := NewSalesOrderItem(o.ID, productID, productSKU, quantity, unitPrice, discount)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing line. Draft only.
func (o *SalesOrder) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound.WithDetail("item_id", itemID.String())
}

// RemoveItem removes a line from the order. Draft only.
func (o *SalesOrder) RemoveItem(itemID uuid.UUID) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}
	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound.WithDetail("item_id", itemID.String())
}

// SetDiscount applies an order-level discount. Draft only.
func (o *SalesOrder) SetDiscount(discount int64) error {
	if !o.CanModify() {
		return shared.ErrOrderNotEditable
	}
	if discount < 0 {
		return shared.NewValidationError("Discount cannot be negative")
	}
	if discount > o.Subtotal {
		return shared.NewValidationError("Discount cannot exceed subtotal")
	}
	o.Discount = discount
	o.recalculateTotals()
	o.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the order notes
func (o *SalesOrder) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// transitionTo validates and applies a bare status change
func (o *SalesOrder) transitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError("Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(o.Status.String(), target.String())
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Confirm transitions draft -> confirmed. Stock deduction and the debt
// increase are orchestrated by the application service around this call;
// the aggregate only guards the transition itself.
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewInvalidTransitionError(o.Status.String(), OrderStatusConfirmed.String())
	}
	if len(o.Items) == 0 {
		return shared.NewValidationError("Cannot confirm order without items")
	}
	return o.transitionTo(OrderStatusConfirmed)
}

// Ship transitions confirmed -> shipped. Status change only.
func (o *SalesOrder) Ship() error {
	return o.transitionTo(OrderStatusShipped)
}

// Complete transitions shipped -> completed. Status change only.
func (o *SalesOrder) Complete() error {
	return o.transitionTo(OrderStatusCompleted)
}

// Cancel transitions draft|confirmed -> cancelled. Stock restoration and
// the debt reversal for confirmed orders are orchestrated by the
// application service.
func (o *SalesOrder) Cancel() error {
	return o.transitionTo(OrderStatusCancelled)
}

// ApplyPayment increases the paid amount. Payments may not exceed the
// order total; partial payments accumulate.
func (o *SalesOrder) ApplyPayment(amount int64) error {
	if amount <= 0 {
		return shared.NewValidationError("Payment amount must be positive")
	}
	if o.PaidAmount+amount > o.Total {
		return shared.NewValidationError("Payment would exceed order total").
			WithDetail("total", o.Total).
			WithDetail("paid_amount", o.PaidAmount)
	}
	o.PaidAmount += amount
	o.UpdatedAt = time.Now()
	return nil
}

// RevertPayment decreases the paid amount when a payment is deleted
func (o *SalesOrder) RevertPayment(amount int64) error {
	if amount <= 0 {
		return shared.NewValidationError("Payment amount must be positive")
	}
	if amount > o.PaidAmount {
		return shared.NewValidationError("Cannot revert more than the paid amount")
	}
	o.PaidAmount -= amount
	o.UpdatedAt = time.Now()
	return nil
}

// recalculateTotals recomputes subtotal and total from the lines
func (o *SalesOrder) recalculateTotals() {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.LineTotal
	}
	o.Subtotal = subtotal
	if o.Discount > o.Subtotal {
		o.Discount = o.Subtotal
	}
	o.Total = o.Subtotal - o.Discount
}

// RemainingAmount is the unpaid portion of the order, derived on read
func (o *SalesOrder) RemainingAmount() int64 {
	return o.Total - o.PaidAmount
}

// ItemCount returns the number of lines in the order
func (o *SalesOrder) ItemCount() int {
	return len(o.Items)
}

// GetItem returns a line by its ID
func (o *SalesOrder) GetItem(itemID uuid.UUID) *SalesOrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// IsDraft returns true if the order is in draft status
func (o *SalesOrder) IsDraft() bool {
	return o.Status == OrderStatusDraft
}

// IsConfirmed returns true if the order is confirmed
func (o *SalesOrder) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}

// IsTerminal returns true if the order is completed or cancelled
func (o *SalesOrder) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// CanModify returns true if lines and discount can still change
func (o *SalesOrder) CanModify() bool {
	return o.IsDraft()
}
