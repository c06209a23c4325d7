package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/finance"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type paymentFixture struct {
	service   *PaymentService
	payments  *mockPaymentRepo
	customers *mockCustomerRepo
	suppliers *mockSupplierRepo
	orders    *mockOrderRepo
}

func newPaymentFixture() *paymentFixture {
	payments := new(mockPaymentRepo)
	customers := new(mockCustomerRepo)
	suppliers := new(mockSupplierRepo)
	orders := new(mockOrderRepo)
	auditRepo := new(mockAuditRepo)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	logger := zap.NewNop()
	scope := NewNoOpTransactionScope(payments, customers, suppliers, orders)
	recorder := auditapp.NewRecorder(auditRepo, logger)

	return &paymentFixture{
		service:   NewPaymentService(scope, payments, customers, suppliers, recorder, logger),
		payments:  payments,
		customers: customers,
		suppliers: suppliers,
		orders:    orders,
	}
}

func makeCustomerWithDebt(t *testing.T, debt int64) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("CUST-001", "Acme Trading")
	require.NoError(t, err)
	if debt > 0 {
		require.NoError(t, customer.IncurDebt(debt))
	}
	return customer
}

func makeConfirmedOrder(t *testing.T, customer *partner.Customer, total int64) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder("SO-20260815093000", customer.ID, uuid.New())
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "SKU-001", 1, total, 0)
	require.NoError(t, err)
	require.NoError(t, order.Confirm())
	return order
}

func TestPaymentService_CreateIncoming(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("settles debt and raises order paid amount", func(t *testing.T) {
		f := newPaymentFixture()
		customer := makeCustomerWithDebt(t, 500000)
		order := makeConfirmedOrder(t, customer, 500000)

		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.orders.On("SaveWithLock", mock.Anything, order).Return(nil)
		f.customers.On("Save", mock.Anything, customer).Return(nil)
		f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, actor, CreatePaymentRequest{
			Type:       "incoming",
			Method:     "cash",
			Amount:     100000,
			CustomerID: &customer.ID,
			OrderID:    &order.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(400000), customer.TotalDebt)
		assert.Equal(t, int64(100000), order.PaidAmount)
		assert.Equal(t, int64(400000), order.RemainingAmount())
		assert.Contains(t, resp.PaymentNumber, "PAY-")
	})

	t.Run("overpayment of the order rejected", func(t *testing.T) {
		f := newPaymentFixture()
		customer := makeCustomerWithDebt(t, 500000)
		order := makeConfirmedOrder(t, customer, 500000)
		require.NoError(t, order.ApplyPayment(450000))

		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		_, err := f.service.Create(ctx, actor, CreatePaymentRequest{
			Type:       "incoming",
			Method:     "cash",
			Amount:     100000,
			CustomerID: &customer.ID,
			OrderID:    &order.ID,
		})
		require.Error(t, err)
		f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("order of another customer rejected", func(t *testing.T) {
		f := newPaymentFixture()
		customer := makeCustomerWithDebt(t, 0)
		other := makeCustomerWithDebt(t, 0)
		order := makeConfirmedOrder(t, other, 100000)

		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		_, err := f.service.Create(ctx, actor, CreatePaymentRequest{
			Type:       "incoming",
			Method:     "bank",
			Amount:     50000,
			CustomerID: &customer.ID,
			OrderID:    &order.ID,
		})
		require.Error(t, err)
	})

	t.Run("customer required", func(t *testing.T) {
		f := newPaymentFixture()
		_, err := f.service.Create(ctx, actor, CreatePaymentRequest{
			Type:   "incoming",
			Method: "cash",
			Amount: 100,
		})
		require.Error(t, err)
	})
}

func TestPaymentService_CreateOutgoing(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("settles supplier payable", func(t *testing.T) {
		f := newPaymentFixture()
		supplier, err := partner.NewSupplier("SUP-001", "Parts Co")
		require.NoError(t, err)
		require.NoError(t, supplier.AddPayable(300000))

		f.suppliers.On("FindByIDForUpdate", mock.Anything, supplier.ID).Return(supplier, nil)
		f.suppliers.On("Save", mock.Anything, supplier).Return(nil)
		f.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err = f.service.Create(ctx, actor, CreatePaymentRequest{
			Type:       "outgoing",
			Method:     "bank",
			Amount:     200000,
			SupplierID: &supplier.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(100000), supplier.TotalPayable)
	})

	t.Run("customer reference rejected", func(t *testing.T) {
		f := newPaymentFixture()
		supplierID := uuid.New()
		customerID := uuid.New()

		_, err := f.service.Create(ctx, actor, CreatePaymentRequest{
			Type:       "outgoing",
			Method:     "bank",
			Amount:     100,
			SupplierID: &supplierID,
			CustomerID: &customerID,
		})
		require.Error(t, err)
	})
}

func TestPaymentService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("reverses incoming payment exactly", func(t *testing.T) {
		f := newPaymentFixture()
		customer := makeCustomerWithDebt(t, 400000)
		order := makeConfirmedOrder(t, customer, 500000)
		require.NoError(t, order.ApplyPayment(100000))

		payment, err := finance.NewPayment("PAY-1", finance.PaymentTypeIncoming, finance.PaymentMethodCash, 100000, actor)
		require.NoError(t, err)
		require.NoError(t, payment.AttachCustomer(customer.ID, &order.ID))

		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.customers.On("Save", mock.Anything, customer).Return(nil)
		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.orders.On("SaveWithLock", mock.Anything, order).Return(nil)
		f.payments.On("Delete", mock.Anything, payment.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, actor, payment.ID))

		assert.Equal(t, int64(500000), customer.TotalDebt)
		assert.Equal(t, int64(0), order.PaidAmount)
	})

	t.Run("reverses outgoing payment exactly", func(t *testing.T) {
		f := newPaymentFixture()
		supplier, err := partner.NewSupplier("SUP-001", "Parts Co")
		require.NoError(t, err)
		require.NoError(t, supplier.AddPayable(100000))

		payment, err := finance.NewPayment("PAY-2", finance.PaymentTypeOutgoing, finance.PaymentMethodBank, 50000, actor)
		require.NoError(t, err)
		require.NoError(t, payment.AttachSupplier(supplier.ID))

		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		f.suppliers.On("FindByIDForUpdate", mock.Anything, supplier.ID).Return(supplier, nil)
		f.suppliers.On("Save", mock.Anything, supplier).Return(nil)
		f.payments.On("Delete", mock.Anything, payment.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, actor, payment.ID))
		assert.Equal(t, int64(150000), supplier.TotalPayable)
	})
}

func TestPaymentService_Summary(t *testing.T) {
	f := newPaymentFixture()
	f.customers.On("ReceivableSummary", mock.Anything).Return(int64(750000), int64(3), nil)
	f.suppliers.On("PayableSummary", mock.Anything).Return(int64(200000), int64(1), nil)

	summary, err := f.service.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(750000), summary.TotalReceivable)
	assert.Equal(t, int64(3), summary.ReceivableCount)
	assert.Equal(t, int64(200000), summary.TotalPayable)
	assert.Equal(t, int64(1), summary.PayableCount)
}
