package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/catalog"
	"github.com/smeops/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductWithStock(t *testing.T, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("SKU-001", "Widget", "hardware", "pcs", 50000, 80000)
	require.NoError(t, err)
	product.CurrentStock = stock
	return product
}

func TestRecord(t *testing.T) {
	actor := uuid.New()

	t.Run("stock in adds and snapshots", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		movement, err := Record(product, MovementTypeIn, 5, "supplier delivery", Refs{}, actor)
		require.NoError(t, err)

		assert.Equal(t, 10, movement.StockBefore)
		assert.Equal(t, 15, movement.StockAfter)
		assert.Equal(t, 15, product.CurrentStock)
		assert.Equal(t, 5, movement.SignedQuantity())
	})

	t.Run("stock out subtracts and snapshots", func(t *testing.T) {
		product := newProductWithStock(t, 100)
		movement, err := Record(product, MovementTypeOut, 30, "order confirmed", Refs{}, actor)
		require.NoError(t, err)

		assert.Equal(t, 100, movement.StockBefore)
		assert.Equal(t, 70, movement.StockAfter)
		assert.Equal(t, 70, product.CurrentStock)
		assert.Equal(t, -30, movement.SignedQuantity())
	})

	t.Run("adjust accepts signed quantity", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		movement, err := Record(product, MovementTypeAdjust, -3, "stock count", Refs{}, actor)
		require.NoError(t, err)
		assert.Equal(t, 7, movement.StockAfter)

		_, err = Record(product, MovementTypeAdjust, 4, "stock count", Refs{}, actor)
		require.NoError(t, err)
		assert.Equal(t, 11, product.CurrentStock)
	})

	t.Run("movement below zero rejected without mutation", func(t *testing.T) {
		product := newProductWithStock(t, 5)
		_, err := Record(product, MovementTypeOut, 6, "order confirmed", Refs{}, actor)
		require.Error(t, err)

		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "NEGATIVE_STOCK", domainErr.Code)
		assert.Equal(t, 5, product.CurrentStock)
	})

	t.Run("adjust below zero rejected", func(t *testing.T) {
		product := newProductWithStock(t, 2)
		_, err := Record(product, MovementTypeAdjust, -3, "stock count", Refs{}, actor)
		assert.Error(t, err)
		assert.Equal(t, 2, product.CurrentStock)
	})

	t.Run("non-positive in or out rejected", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		_, err := Record(product, MovementTypeIn, 0, "", Refs{}, actor)
		assert.Error(t, err)
		_, err = Record(product, MovementTypeOut, -1, "", Refs{}, actor)
		assert.Error(t, err)
	})

	t.Run("zero adjustment rejected", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		_, err := Record(product, MovementTypeAdjust, 0, "", Refs{}, actor)
		assert.Error(t, err)
	})

	t.Run("record bumps product version", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		before := product.Version
		_, err := Record(product, MovementTypeIn, 1, "", Refs{}, actor)
		require.NoError(t, err)
		assert.Equal(t, before+1, product.Version)
	})

	t.Run("refs carried onto the movement", func(t *testing.T) {
		product := newProductWithStock(t, 10)
		orderID := uuid.New()
		movement, err := Record(product, MovementTypeOut, 1, "order confirmed", Refs{OrderID: &orderID}, actor)
		require.NoError(t, err)
		require.NotNil(t, movement.OrderID)
		assert.Equal(t, orderID, *movement.OrderID)
		assert.Nil(t, movement.SupplierID)
		assert.Equal(t, actor, movement.CreatedBy)
	})
}
