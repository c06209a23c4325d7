package finance

import (
	"context"

	"github.com/smeops/backend/internal/domain/finance"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/trade"
)

// TransactionScope runs payment workflow steps inside one database
// transaction. Recording a payment touches the payment row, the
// counterparty balance and possibly an order's paid amount.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in
// the payment workflow, all bound to the same transaction.
type TransactionalRepositories interface {
	PaymentRepo() finance.PaymentRepository
	CustomerRepo() partner.CustomerRepository
	SupplierRepo() partner.SupplierRepository
	OrderRepo() trade.SalesOrderRepository
}

// NoOpTransactionScope passes the wired repositories through without a
// real transaction. Used in tests.
type NoOpTransactionScope struct {
	paymentRepo  finance.PaymentRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
	orderRepo    trade.SalesOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	paymentRepo finance.PaymentRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
	orderRepo trade.SalesOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository { return s.paymentRepo }

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }

// SupplierRepo returns the supplier repository
func (s *NoOpTransactionScope) SupplierRepo() partner.SupplierRepository { return s.supplierRepo }

// OrderRepo returns the sales order repository
func (s *NoOpTransactionScope) OrderRepo() trade.SalesOrderRepository { return s.orderRepo }
