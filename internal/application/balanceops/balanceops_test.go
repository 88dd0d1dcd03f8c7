package balanceops_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/balanceops"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/testutil"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Increment crea la fila si el artículo no tiene balance todavía.
func TestIncrement_CreaFilaSiNoExiste(t *testing.T) {
	store := testutil.NewStore()
	repo := testutil.NewBalanceRepo(store)

	require.NoError(t, balanceops.Increment(repo, "X001", dec("25"), "kg", now))

	bal := store.Balances["X001"]
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.Equal(dec("25")))
	assert.Equal(t, "kg", bal.Unit)
}

// Increment acumula sobre la fila existente y actualiza la unidad con la del
// movimiento más reciente.
func TestIncrement_Acumula(t *testing.T) {
	store := testutil.NewStore()
	repo := testutil.NewBalanceRepo(store)
	store.SeedBalance(entity.Balance{ItemCode: "X001", Quantity: dec("100"), Unit: "kg"})

	require.NoError(t, balanceops.Increment(repo, "X001", dec("50"), "un", now))

	bal := store.Balances["X001"]
	assert.True(t, bal.Quantity.Equal(dec("150")))
	assert.Equal(t, "un", bal.Unit)
}

// Decrement sobre un artículo sin fila es un no-op: la ausencia ya es cero.
func TestDecrement_SinFila(t *testing.T) {
	store := testutil.NewStore()
	repo := testutil.NewBalanceRepo(store)

	require.NoError(t, balanceops.Decrement(repo, "X001", dec("10"), now))
	assert.Empty(t, store.Balances)
}

// Decrement elimina la fila cuando la cantidad llega a cero o menos.
func TestDecrement_EliminaFilaEnCero(t *testing.T) {
	store := testutil.NewStore()
	repo := testutil.NewBalanceRepo(store)
	store.SeedBalance(entity.Balance{ItemCode: "X001", Quantity: dec("30"), Unit: "kg"})

	require.NoError(t, balanceops.Decrement(repo, "X001", dec("30"), now))
	assert.Nil(t, store.Balances["X001"], "cantidad cero elimina la fila")

	store.SeedBalance(entity.Balance{ItemCode: "X002", Quantity: dec("10"), Unit: "kg"})
	require.NoError(t, balanceops.Decrement(repo, "X002", dec("15"), now))
	assert.Nil(t, store.Balances["X002"], "quedar por debajo de cero también elimina la fila")
}

func TestDecrement_Parcial(t *testing.T) {
	store := testutil.NewStore()
	repo := testutil.NewBalanceRepo(store)
	store.SeedBalance(entity.Balance{ItemCode: "X001", Quantity: dec("100"), Unit: "kg"})

	require.NoError(t, balanceops.Decrement(repo, "X001", dec("40"), now))

	bal := store.Balances["X001"]
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.Equal(dec("60")))
}
