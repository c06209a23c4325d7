package persistence

import (
	"context"

	appfin "github.com/smeops/backend/internal/application/finance"
	appinv "github.com/smeops/backend/internal/application/inventory"
	apptrade "github.com/smeops/backend/internal/application/trade"
	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/finance"
	"github.com/smeops/backend/internal/domain/inventory"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope executes workflow steps inside a GORM
// transaction. One scope type serves the order, payment and stock
// workflows; each sees only the repositories its interface exposes.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute implements the order workflow scope
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// Finance adapts the scope for the payment workflow
func (s *GormTransactionScope) Finance() appfin.TransactionScope {
	return financeScope{s}
}

// Inventory adapts the scope for the stock workflow
func (s *GormTransactionScope) Inventory() appinv.TransactionScope {
	return inventoryScope{s}
}

type financeScope struct{ scope *GormTransactionScope }

func (s financeScope) Execute(ctx context.Context, fn func(repos appfin.TransactionalRepositories) error) error {
	return s.scope.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type inventoryScope struct{ scope *GormTransactionScope }

func (s inventoryScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.scope.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to the
// running transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the sales order repository scoped to the transaction
func (r *gormTransactionalRepositories) OrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the transaction
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the transaction
func (r *gormTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the transaction
func (r *gormTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// SupplierRepo returns the supplier repository scoped to the transaction
func (r *gormTransactionalRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the transaction
func (r *gormTransactionalRepositories) PaymentRepo() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var (
	_ apptrade.TransactionScope            = (*GormTransactionScope)(nil)
	_ apptrade.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
	_ appfin.TransactionalRepositories     = (*gormTransactionalRepositories)(nil)
	_ appinv.TransactionalRepositories     = (*gormTransactionalRepositories)(nil)
)
