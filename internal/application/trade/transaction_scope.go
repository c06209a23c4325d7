package trade

import (
	"context"

	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/inventory"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/trade"
)

// TransactionScope runs order workflow steps inside one database
// transaction. Confirming an order touches the order, every product on
// it, the movement ledger and the customer balance; they commit or roll
// back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in
// the order workflow, all bound to the same transaction.
type TransactionalRepositories interface {
	OrderRepo() trade.SalesOrderRepository
	ProductRepo() catalog.ProductRepository
	MovementRepo() inventory.StockMovementRepository
	CustomerRepo() partner.CustomerRepository
}

// NoOpTransactionScope passes the wired repositories through without a
// real transaction. Used in tests.
type NoOpTransactionScope struct {
	orderRepo    trade.SalesOrderRepository
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
	customerRepo partner.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
	customerRepo partner.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		customerRepo: customerRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the sales order repository
func (s *NoOpTransactionScope) OrderRepo() trade.SalesOrderRepository { return s.orderRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }
