package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomer_DebtBalance(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Acme Trading")
	require.NoError(t, err)
	assert.Equal(t, int64(0), customer.TotalDebt)
	assert.False(t, customer.HasOutstandingDebt())

	require.NoError(t, customer.IncurDebt(500000))
	assert.Equal(t, int64(500000), customer.TotalDebt)
	assert.True(t, customer.HasOutstandingDebt())

	require.NoError(t, customer.SettleDebt(100000))
	assert.Equal(t, int64(400000), customer.TotalDebt)

	// credit balances are allowed, the balance is signed
	require.NoError(t, customer.SettleDebt(500000))
	assert.Equal(t, int64(-100000), customer.TotalDebt)
	assert.False(t, customer.HasOutstandingDebt())
}

func TestCustomer_DebtValidation(t *testing.T) {
	customer, err := NewCustomer("CUST-001", "Acme Trading")
	require.NoError(t, err)

	assert.Error(t, customer.IncurDebt(0))
	assert.Error(t, customer.IncurDebt(-1))
	assert.Error(t, customer.SettleDebt(0))
}

func TestSupplier_PayableBalance(t *testing.T) {
	supplier, err := NewSupplier("SUP-001", "Parts Co")
	require.NoError(t, err)

	require.NoError(t, supplier.AddPayable(250000))
	require.NoError(t, supplier.SettlePayable(100000))
	assert.Equal(t, int64(150000), supplier.TotalPayable)
	assert.True(t, supplier.HasOutstandingPayable())
}

func TestNewCustomer_Validation(t *testing.T) {
	_, err := NewCustomer("", "Acme")
	assert.Error(t, err)
	_, err = NewCustomer("CUST-001", "")
	assert.Error(t, err)
}
