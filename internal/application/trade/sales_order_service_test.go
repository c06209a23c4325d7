package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	auditapp "github.com/smeops/backend/internal/application/audit"
	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/inventory"
	"github.com/smeops/backend/internal/domain/partner"
	"github.com/smeops/backend/internal/domain/shared"
	"github.com/smeops/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceFixture struct {
	service   *SalesOrderService
	orders    *mockOrderRepo
	products  *mockProductRepo
	movements *mockMovementRepo
	customers *mockCustomerRepo
	auditRepo *mockAuditRepo
}

func newServiceFixture() *serviceFixture {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)
	movements := new(mockMovementRepo)
	customers := new(mockCustomerRepo)
	auditRepo := new(mockAuditRepo)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	logger := zap.NewNop()
	scope := NewNoOpTransactionScope(orders, products, movements, customers)
	recorder := auditapp.NewRecorder(auditRepo, logger)

	return &serviceFixture{
		service:   NewSalesOrderService(scope, orders, recorder, logger),
		orders:    orders,
		products:  products,
		movements: movements,
		customers: customers,
		auditRepo: auditRepo,
	}
}

func makeProduct(t *testing.T, sku string, stock int, sellPrice int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Product "+sku, "general", "pcs", sellPrice/2, sellPrice)
	require.NoError(t, err)
	product.CurrentStock = stock
	return product
}

func makeCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("CUST-001", "Acme Trading")
	require.NoError(t, err)
	return customer
}

func makeDraftOrder(t *testing.T, customer *partner.Customer, product *catalog.Product, quantity int) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder("SO-20260815093000", customer.ID, uuid.New())
	require.NoError(t, err)
	_, err = order.AddItem(product.ID, product.SKU, quantity, product.SellPrice, 0)
	require.NoError(t, err)
	return order
}

func TestSalesOrderService_Confirm(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("deducts stock and books customer debt", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 30)

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.products.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)
		f.products.On("Save", mock.Anything, product).Return(nil)
		f.movements.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.customers.On("Save", mock.Anything, customer).Return(nil)
		f.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusConfirmed)
		require.NoError(t, err)

		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, 70, product.CurrentStock)
		assert.Equal(t, order.Total, customer.TotalDebt)

		movement := f.movements.Calls[0].Arguments.Get(1).(*inventory.StockMovement)
		assert.Equal(t, inventory.MovementTypeOut, movement.Type)
		assert.Equal(t, 30, movement.Quantity)
		assert.Equal(t, 100, movement.StockBefore)
		assert.Equal(t, 70, movement.StockAfter)
		require.NotNil(t, movement.OrderID)
		assert.Equal(t, order.ID, *movement.OrderID)
	})

	t.Run("insufficient stock leaves order in draft", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 5, 80000)
		order := makeDraftOrder(t, customer, product, 30)

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.products.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)

		_, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusConfirmed)
		require.Error(t, err)

		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 30, domainErr.Details["requested"])
		assert.Equal(t, 5, domainErr.Details["available"])
		assert.Equal(t, 5, product.CurrentStock)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("shortage on any line blocks all lines", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		first := makeProduct(t, "SKU-001", 100, 50000)
		second := makeProduct(t, "SKU-002", 1, 30000)

		order, err := trade.NewSalesOrder("SO-20260815093001", customer.ID, uuid.New())
		require.NoError(t, err)
		_, err = order.AddItem(first.ID, first.SKU, 10, first.SellPrice, 0)
		require.NoError(t, err)
		_, err = order.AddItem(second.ID, second.SKU, 5, second.SellPrice, 0)
		require.NoError(t, err)

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.products.On("FindByIDForUpdate", mock.Anything, first.ID).Return(first, nil)
		f.products.On("FindByIDForUpdate", mock.Anything, second.ID).Return(second, nil)

		_, err = f.service.Transition(ctx, actor, order.ID, trade.OrderStatusConfirmed)
		require.Error(t, err)

		assert.Equal(t, 100, first.CurrentStock)
		assert.Equal(t, 1, second.CurrentStock)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("second confirm rejected with invalid transition", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 30)
		require.NoError(t, order.Confirm())

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		_, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusConfirmed)
		require.Error(t, err)

		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSalesOrderService_Cancel(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("cancel confirmed restores stock and settles remaining debt", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 30)

		// state after a prior confirmation
		require.NoError(t, order.Confirm())
		product.CurrentStock = 70
		require.NoError(t, customer.IncurDebt(order.Total))

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.products.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)
		f.products.On("Save", mock.Anything, product).Return(nil)
		f.movements.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.customers.On("Save", mock.Anything, customer).Return(nil)
		f.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusCancelled)
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 100, product.CurrentStock)
		assert.Equal(t, int64(0), customer.TotalDebt)

		movement := f.movements.Calls[0].Arguments.Get(1).(*inventory.StockMovement)
		assert.Equal(t, inventory.MovementTypeIn, movement.Type)
		assert.Equal(t, 70, movement.StockBefore)
		assert.Equal(t, 100, movement.StockAfter)
	})

	t.Run("partially paid order settles only the remainder", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 10)

		require.NoError(t, order.Confirm())
		product.CurrentStock = 90
		require.NoError(t, customer.IncurDebt(order.Total))
		require.NoError(t, order.ApplyPayment(300000))
		require.NoError(t, customer.SettleDebt(300000))

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.products.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)
		f.products.On("Save", mock.Anything, product).Return(nil)
		f.movements.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.customers.On("FindByIDForUpdate", mock.Anything, customer.ID).Return(customer, nil)
		f.customers.On("Save", mock.Anything, customer).Return(nil)
		f.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

		_, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusCancelled)
		require.NoError(t, err)

		// paid portion stays on the books until refunded explicitly
		assert.Equal(t, int64(0), customer.TotalDebt)
		assert.Equal(t, 100, product.CurrentStock)
	})

	t.Run("cancel draft has no side effects", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 10)

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusCancelled)
		require.NoError(t, err)

		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 100, product.CurrentStock)
		f.movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.customers.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("cancel shipped rejected", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 10)
		require.NoError(t, order.Confirm())
		require.NoError(t, order.Ship())

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		_, err := f.service.Transition(ctx, actor, order.ID, trade.OrderStatusCancelled)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestSalesOrderService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("snapshots catalog price onto the line", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)

		f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, actor, CreateSalesOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateSalesOrderItem{
				{ProductID: product.ID, Quantity: 2},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "draft", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(80000), resp.Items[0].UnitPrice)
		assert.Equal(t, int64(160000), resp.Total)
		assert.Contains(t, resp.OrderNumber, "SO-")
	})

	t.Run("inactive product rejected", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		product.Deactivate()

		f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := f.service.Create(ctx, actor, CreateSalesOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateSalesOrderItem{
				{ProductID: product.ID, Quantity: 1},
			},
		})
		require.Error(t, err)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown customer rejected", func(t *testing.T) {
		f := newServiceFixture()
		customerID := uuid.New()
		f.customers.On("FindByID", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, actor, CreateSalesOrderRequest{
			CustomerID: customerID,
			Items: []CreateSalesOrderItem{
				{ProductID: uuid.New(), Quantity: 1},
			},
		})
		require.Error(t, err)
	})
}

func TestSalesOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("only draft orders can be deleted", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 1)
		require.NoError(t, order.Confirm())

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		err := f.service.Delete(ctx, actor, order.ID)
		require.Error(t, err)
		f.orders.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("draft delete soft-deletes", func(t *testing.T) {
		f := newServiceFixture()
		customer := makeCustomer(t)
		product := makeProduct(t, "SKU-001", 100, 80000)
		order := makeDraftOrder(t, customer, product, 1)

		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.orders.On("SoftDelete", mock.Anything, order.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, actor, order.ID))
		f.orders.AssertCalled(t, "SoftDelete", mock.Anything, order.ID)
	})
}
