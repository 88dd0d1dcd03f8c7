package inbound_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/inbound"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/testutil"
)

var (
	testActor    = audit.Actor{UserID: "u-1", Username: "bodeguero"}
	testReceived = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
)

func newFixture() (*inbound.UseCase, *testutil.Store, *testutil.RecorderSpy) {
	store := testutil.NewStore()
	spy := &testutil.RecorderSpy{}
	uc := inbound.NewUseCase(testutil.NewTxRunner(store), testutil.NewLotRepo(store), spy)
	return uc, store, spy
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

// El alta numera los lotes de forma correlativa por fecha, suma al balance y
// deja exactamente un movimiento IN por lote.
func TestCreate_NumeraYProyecta(t *testing.T) {
	uc, store, spy := newFixture()
	ctx := context.Background()

	first, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("100"), Unit: "kg", ReceivedDate: testReceived,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "20250110001", first.LotID)

	second, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("50"), Unit: "kg", ReceivedDate: testReceived,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "20250110002", second.LotID, "la secuencia debe ser correlativa dentro del día")

	// Balance: 100 + 50.
	bal := store.Balances["X001"]
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.Equal(dec("150")), "balance esperado 150, obtenido %s", bal.Quantity)

	// Un movimiento IN por lote.
	require.Len(t, store.Movements, 2)
	for _, m := range store.Movements {
		assert.Equal(t, entity.DirectionIN, m.Direction)
	}

	require.Len(t, spy.Events, 2)
	assert.Equal(t, entity.OpInsert, spy.Events[0].Operation)
	assert.Equal(t, "lots", spy.Events[0].TableName)
}

// Lotes de fechas distintas llevan secuencias independientes.
func TestCreate_SecuenciaPorFecha(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	lot, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("10"), Unit: "kg", ReceivedDate: testReceived,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "20250110001", lot.LotID)

	otherDay := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	lot2, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("10"), Unit: "kg", ReceivedDate: otherDay,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "20250111001", lot2.LotID, "cada fecha arranca su propia secuencia en 001")
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, inbound.CreateInput{Quantity: dec("1"), Unit: "kg", ReceivedDate: testReceived}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "item_code es obligatorio")

	_, err = uc.Create(ctx, inbound.CreateInput{ItemCode: "X001", Quantity: dec("0"), Unit: "kg", ReceivedDate: testReceived}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity cero no es válida")

	_, err = uc.Create(ctx, inbound.CreateInput{ItemCode: "X001", Quantity: dec("-5"), Unit: "kg", ReceivedDate: testReceived}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity negativa no es válida")

	_, err = uc.Create(ctx, inbound.CreateInput{ItemCode: "X001", Quantity: dec("1"), Unit: "kg"}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "received_date es obligatorio")

	assert.Empty(t, store.Lots, "ninguna entrada inválida debe persistir nada")
	assert.Empty(t, store.Balances)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

// Cambiar la cantidad de un lote ajusta el balance por la diferencia.
func TestUpdate_AjustaBalancePorDiferencia(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	lot, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("100"), Unit: "kg", ReceivedDate: testReceived,
	}, testActor)
	require.NoError(t, err)

	qty := dec("80")
	updated, err := uc.Update(ctx, inbound.UpdateInput{LotID: lot.LotID, Quantity: &qty}, testActor)
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec("80")))

	bal := store.Balances["X001"]
	require.NotNil(t, bal)
	assert.True(t, bal.Quantity.Equal(dec("80")), "balance esperado 80, obtenido %s", bal.Quantity)

	// El movimiento IN original conserva la cantidad recibida.
	require.Len(t, store.Movements, 1)
	for _, m := range store.Movements {
		assert.True(t, m.Quantity.Equal(dec("100")), "el historial IN no se reescribe")
	}
}

// Cambiar el artículo del lote mueve toda la cantidad de un balance al otro.
func TestUpdate_CambioDeArticuloMueveBalance(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	lot, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("100"), Unit: "kg", ReceivedDate: testReceived,
	}, testActor)
	require.NoError(t, err)

	newItem := "X002"
	_, err = uc.Update(ctx, inbound.UpdateInput{LotID: lot.LotID, ItemCode: &newItem}, testActor)
	require.NoError(t, err)

	assert.Nil(t, store.Balances["X001"], "el balance viejo queda en cero y su fila se elimina")
	require.NotNil(t, store.Balances["X002"])
	assert.True(t, store.Balances["X002"].Quantity.Equal(dec("100")))
}

func TestUpdate_LoteInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	qty := dec("10")
	_, err := uc.Update(context.Background(), inbound.UpdateInput{LotID: "20250110999", Quantity: &qty}, testActor)
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete
// ──────────────────────────────────────────────────────────────────────────────

// Borrar un lote resta su cantidad restante del balance pero conserva el
// historial de movimientos.
func TestDelete_RestaBalanceYConservaHistorial(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	lot, err := uc.Create(ctx, inbound.CreateInput{
		ItemCode: "X001", Quantity: dec("100"), Unit: "kg", ReceivedDate: testReceived,
	}, testActor)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, lot.LotID, testActor))

	assert.Empty(t, store.Lots)
	assert.Nil(t, store.Balances["X001"], "balance a cero elimina la fila")
	assert.Len(t, store.Movements, 1, "el movimiento IN sobrevive a la baja del lote")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SaveBatch (mejor esfuerzo)
// ──────────────────────────────────────────────────────────────────────────────

// Una fila inválida no frena el lote: las demás filas se aplican y el
// resultado refleja fila a fila el éxito o el error.
func TestSaveBatch_MejorEsfuerzo(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	item := "X001"
	unit := "kg"
	qty1 := dec("30")
	qty2 := dec("20")
	received := "2025-01-10"

	rows := []dto.InboundRow{
		{RowStatus: dto.RowInsert, ItemCode: &item, Quantity: &qty1, Unit: &unit, ReceivedDate: &received},
		{RowStatus: dto.RowUpdate}, // sin lot_id: inválida
		{RowStatus: dto.RowInsert, ItemCode: &item, Quantity: &qty2, Unit: &unit, ReceivedDate: &received},
	}

	results := uc.SaveBatch(ctx, rows, testActor)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Message, "lot_id")
	assert.True(t, results[2].Success, "la fila posterior al error debe aplicarse")

	assert.Len(t, store.Lots, 2)
	require.NotNil(t, store.Balances["X001"])
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("50")))
}
