package trade

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/inventory"
	"github.com/smeops/backend/internal/domain/shared"
	"github.com/smeops/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SalesOrderService orchestrates the order lifecycle. Status transitions
// with side effects (confirm, cancel) run inside a transaction scope so
// the order, the stock movements, the product quantities and the
// customer balance commit atomically.
type SalesOrderService struct {
	scope     TransactionScope
	orderRepo trade.SalesOrderRepository
	recorder  *auditapp.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(scope TransactionScope, orderRepo trade.SalesOrderRepository, recorder *auditapp.Recorder, logger *zap.Logger) *SalesOrderService {
	return &SalesOrderService{
		scope:     scope,
		orderRepo: orderRepo,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *SalesOrderService) generateOrderNumber() string {
	return "SO-" + s.now().Format("20060102150405")
}

// Create creates a draft order with its lines. Unit prices default to
// the product's current sell price and are snapshotted onto the line.
func (s *SalesOrderService) Create(ctx context.Context, actorID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.CustomerRepo().FindByID(ctx, req.CustomerID); err != nil {
			return err
		}

		created, err := trade.NewSalesOrder(s.generateOrderNumber(), req.CustomerID, actorID)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return shared.NewValidationError("Product is not active").WithDetail("sku", product.SKU)
			}
			unitPrice := product.SellPrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}
			if _, err := created.AddItem(product.ID, product.SKU, line.Quantity, unitPrice, line.Discount); err != nil {
				return err
			}
		}

		if req.Discount > 0 {
			if err := created.SetDiscount(req.Discount); err != nil {
				return err
			}
		}
		created.SetNotes(req.Notes)

		if err := repos.OrderRepo().Save(ctx, created); err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "sales_order", order.ID, "create", nil, ToSalesOrderResponse(order))
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves an order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// GetByOrderNumber retrieves an order by its human-facing number
func (s *SalesOrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// List returns orders matching the filter
func (s *SalesOrderService) List(ctx context.Context, filter shared.Filter) ([]SalesOrderResponse, int64, error) {
	filter.Normalize()
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SalesOrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToSalesOrderResponse(&orders[idx]))
	}
	return responses, total, nil
}

// ListByCustomer returns one customer's orders
func (s *SalesOrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrderResponse, int64, error) {
	filter.Normalize()
	orders, total, err := s.orderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SalesOrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToSalesOrderResponse(&orders[idx]))
	}
	return responses, total, nil
}

// StatusCounts returns the number of orders per status
func (s *SalesOrderService) StatusCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(counts))
	for status, count := range counts {
		result[status.String()] = count
	}
	return result, nil
}

// Update changes the discount or notes of a draft order
func (s *SalesOrderService) Update(ctx context.Context, actorID, orderID uuid.UUID, req UpdateSalesOrderRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if req.Discount != nil {
			if err := found.SetDiscount(*req.Discount); err != nil {
				return err
			}
		}
		if req.Notes != nil {
			if !found.CanModify() {
				return shared.ErrOrderNotEditable
			}
			found.SetNotes(*req.Notes)
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, found); err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "sales_order", order.ID, "update", nil, ToSalesOrderResponse(order))
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// AddItem adds a line to a draft order
func (s *SalesOrderService) AddItem(ctx context.Context, actorID, orderID uuid.UUID, req AddItemRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return shared.NewValidationError("Product is not active").WithDetail("sku", product.SKU)
		}
		unitPrice := product.SellPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		if _, err := found.AddItem(product.ID, product.SKU, req.Quantity, unitPrice, req.Discount); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, found); err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// UpdateItem changes the quantity of a draft order line
func (s *SalesOrderService) UpdateItem(ctx context.Context, actorID, orderID, itemID uuid.UUID, req UpdateItemRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := found.UpdateItemQuantity(itemID, req.Quantity); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, found); err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// RemoveItem removes a line from a draft order
func (s *SalesOrderService) RemoveItem(ctx context.Context, actorID, orderID, itemID uuid.UUID) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := found.RemoveItem(itemID); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, found); err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Delete soft-deletes a draft order. Orders past draft stay on the books.
func (s *SalesOrderService) Delete(ctx context.Context, actorID, orderID uuid.UUID) error {
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.IsDraft() {
			return shared.NewValidationError("Only draft orders can be deleted")
		}
		return repos.OrderRepo().SoftDelete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, actorID, "sales_order", orderID, "delete", nil, nil)
	return nil
}

// Transition moves an order to the target status and applies the side
// effects of that transition. The switch is validate-then-apply: for a
// confirmation every line is checked against current stock before any
// movement is recorded, so a shortage on the last line leaves nothing
// half-applied.
func (s *SalesOrderService) Transition(ctx context.Context, actorID, orderID uuid.UUID, target trade.OrderStatus) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	var previous trade.OrderStatus

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		found, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		previous = found.Status

		switch target {
		case trade.OrderStatusConfirmed:
			if err := s.confirm(ctx, repos, found, actorID); err != nil {
				return err
			}
		case trade.OrderStatusCancelled:
			if err := s.cancel(ctx, repos, found, actorID); err != nil {
				return err
			}
		case trade.OrderStatusShipped:
			if err := found.Ship(); err != nil {
				return err
			}
		case trade.OrderStatusCompleted:
			if err := found.Complete(); err != nil {
				return err
			}
		default:
			return shared.NewValidationError("Unknown order status")
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, found); err != nil {
			return err
		}
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, actorID, "sales_order", order.ID, "status_"+target.String(),
		map[string]string{"status": previous.String()},
		map[string]string{"status": order.Status.String()})

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// confirm deducts stock for every line and books the order total onto
// the customer's receivable balance.
func (s *SalesOrderService) confirm(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder, actorID uuid.UUID) error {
	if err := order.Confirm(); err != nil {
		return err
	}

	products, err := s.lockOrderProducts(ctx, repos, order)
	if err != nil {
		return err
	}

	// validate all lines before recording any movement
	for _, item := range order.Items {
		product := products[item.ProductID]
		if !product.CanFulfill(item.Quantity) {
			return shared.NewInsufficientStockError(product.SKU, item.Quantity, product.CurrentStock)
		}
	}

	for _, item := range order.Items {
		product := products[item.ProductID]
		movement, err := inventory.Record(product, inventory.MovementTypeOut, item.Quantity,
			"order "+order.OrderNumber+" confirmed", inventory.Refs{OrderID: &order.ID}, actorID)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, movement); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
	}

	customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, order.CustomerID)
	if err != nil {
		return err
	}
	if err := customer.IncurDebt(order.Total); err != nil {
		return err
	}
	return repos.CustomerRepo().Save(ctx, customer)
}

// cancel restores stock and reverses the unpaid remainder of the
// customer's debt when the order was confirmed. Cancelling a draft has
// no side effects.
func (s *SalesOrderService) cancel(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder, actorID uuid.UUID) error {
	wasConfirmed := order.IsConfirmed()
	remaining := order.RemainingAmount()

	if err := order.Cancel(); err != nil {
		return err
	}
	if !wasConfirmed {
		return nil
	}

	products, err := s.lockOrderProducts(ctx, repos, order)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		product := products[item.ProductID]
		movement, err := inventory.Record(product, inventory.MovementTypeIn, item.Quantity,
			"order "+order.OrderNumber+" cancelled", inventory.Refs{OrderID: &order.ID}, actorID)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Create(ctx, movement); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
	}

	if remaining > 0 {
		customer, err := repos.CustomerRepo().FindByIDForUpdate(ctx, order.CustomerID)
		if err != nil {
			return err
		}
		if err := customer.SettleDebt(remaining); err != nil {
			return err
		}
		return repos.CustomerRepo().Save(ctx, customer)
	}
	return nil
}

// lockOrderProducts loads every product on the order under a row lock,
// in a stable ID order so two concurrent confirmations cannot deadlock.
func (s *SalesOrderService) lockOrderProducts(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	products := make(map[uuid.UUID]*catalog.Product, len(ids))
	for _, id := range ids {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}
