package outbound_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/testutil"
)

var testActor = audit.Actor{UserID: "u-1", Username: "bodeguero"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture() (*outbound.UseCase, *testutil.Store, *testutil.RecorderSpy) {
	store := testutil.NewStore()
	spy := &testutil.RecorderSpy{}
	uc := outbound.NewUseCase(testutil.NewTxRunner(store), testutil.NewMovementRepo(store), spy)
	return uc, store, spy
}

// seedLot crea un lote con su balance acumulado, como dejaría el flujo de
// entradas.
func seedLot(store *testutil.Store, lotID, itemCode, qty string) {
	received := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	store.SeedLot(entity.Lot{
		LotID: lotID, ItemCode: itemCode, ReceivedDate: received,
		Quantity: dec(qty), Unit: "kg",
	})
	bal := store.Balances[itemCode]
	if bal == nil {
		store.SeedBalance(entity.Balance{ItemCode: itemCode, Quantity: dec(qty), Unit: "kg"})
		return
	}
	bal.Quantity = bal.Quantity.Add(dec(qty))
}

func insertRow(lotID, itemCode, qty string) dto.OutboundRow {
	q := dec(qty)
	return dto.OutboundRow{
		RowStatus: dto.RowInsert, LotID: lotID, ItemCode: itemCode,
		Quantity: &q, Unit: "kg", IODate: "2025-01-12",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SaveBatch: inserciones
// ──────────────────────────────────────────────────────────────────────────────

// Una salida descuenta del lote y del balance y deja un movimiento OUT.
func TestSaveBatch_InsertDescuentaLoteYBalance(t *testing.T) {
	uc, store, spy := newFixture()
	seedLot(store, "20250110001", "X001", "100")
	seedLot(store, "20250110002", "X001", "50")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"),
	}, testActor)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("70")))
	assert.True(t, store.Lots["20250110002"].Quantity.Equal(dec("50")), "el otro lote no se toca")
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("120")), "balance 150 - 30 = 120")

	require.Len(t, store.Movements, 1)
	for _, m := range store.Movements {
		assert.Equal(t, entity.DirectionOUT, m.Direction)
		assert.True(t, m.Quantity.Equal(dec("30")))
	}

	require.Len(t, spy.Events, 1)
	assert.Equal(t, entity.OpInsert, spy.Events[0].Operation)
	assert.Equal(t, "movements", spy.Events[0].TableName)
}

// Pedir más de lo que queda en el lote falla con stock insuficiente aunque el
// balance del artículo alcance.
func TestSaveBatch_InsufficienteEnElLote(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "70")
	seedLot(store, "20250110002", "X001", "80")

	_, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "80"),
	}, testActor)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"la disponibilidad se verifica por lote, no por balance del artículo")

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("70")), "nada debe cambiar")
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("150")))
	assert.Empty(t, store.Movements)
}

// Un lote de filas es atómico: si la segunda fila falla, la primera también
// se revierte y no se emite auditoría.
func TestSaveBatch_AtomicoRevierteTodo(t *testing.T) {
	uc, store, spy := newFixture()
	seedLot(store, "20250110001", "X001", "100")
	seedLot(store, "20250110002", "X001", "50")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"), // válida
		insertRow("20250110002", "X001", "60"), // excede el lote
	}, testActor)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "fila 2", "el error identifica la fila fallida")
	assert.Nil(t, results)

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("100")),
		"la fila válida previa también debe revertirse")
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("150")))
	assert.Empty(t, store.Movements)
	assert.Empty(t, spy.Events, "ningún evento de auditoría tras un rollback")
}

// Una salida con un item_code distinto al del lote se rechaza: si se
// aceptara, la anulación posterior restauraría el balance del artículo
// equivocado y la identidad balance == Σ lotes quedaría rota para siempre.
func TestSaveBatch_RechazaItemDistintoAlDelLote(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "A001", "10")

	_, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "B002", "4"),
	}, testActor)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "B002")
	assert.Contains(t, err.Error(), "A001")

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("10")), "el lote no se toca")
	assert.True(t, store.Balances["A001"].Quantity.Equal(dec("10")))
	assert.Nil(t, store.Balances["B002"], "no debe aparecer balance para el artículo ajeno")
	assert.Empty(t, store.Movements)
}

// El mismo chequeo aplica al corregir una salida, tanto sobre el mismo lote
// como al reapuntarla a otro.
func TestSaveBatch_UpdateRechazaItemDistintoAlDelLote(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "A001", "10")
	seedLot(store, "20250110002", "A001", "10")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "A001", "4"),
	}, testActor)
	require.NoError(t, err)
	mov := results[0].Data.(*entity.Movement)

	q := dec("4")
	// Mismo lote, item ajeno.
	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowUpdate, ID: &mov.ID, LotID: "20250110001", ItemCode: "B002",
		Quantity: &q, Unit: "kg", IODate: "2025-01-13",
	}}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Reapuntada a otro lote, item ajeno.
	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowUpdate, ID: &mov.ID, LotID: "20250110002", ItemCode: "B002",
		Quantity: &q, Unit: "kg", IODate: "2025-01-13",
	}}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, store.Lots["20250110002"].Quantity.Equal(dec("10")), "el rechazo no deja efectos parciales")
	assert.True(t, store.Balances["A001"].Quantity.Equal(dec("16")), "20 - 4 de la salida vigente")
}

func TestSaveBatch_LoteInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250199001", "X001", "10"),
	}, testActor)
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SaveBatch: actualizaciones
// ──────────────────────────────────────────────────────────────────────────────

// Corregir la cantidad de una salida sobre el mismo lote ajusta lote y
// balance por la diferencia; el disponible efectivo incluye lo ya consumido.
func TestSaveBatch_UpdateMismoLote(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "100")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"),
	}, testActor)
	require.NoError(t, err)
	mov := results[0].Data.(*entity.Movement)

	// Quedan 70 en el lote, pero con los 30 ya consumidos el disponible
	// efectivo para esta misma salida es 100.
	q := dec("90")
	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowUpdate, ID: &mov.ID, LotID: "20250110001", ItemCode: "X001",
		Quantity: &q, Unit: "kg", IODate: "2025-01-13",
	}}, testActor)
	require.NoError(t, err)

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("10")))
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("10")))
	assert.True(t, store.Movements[mov.ID].Quantity.Equal(dec("90")),
		"la fila OUT se edita en el sitio")

	// Superar el disponible efectivo sí falla.
	q2 := dec("101")
	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowUpdate, ID: &mov.ID, LotID: "20250110001", ItemCode: "X001",
		Quantity: &q2, Unit: "kg", IODate: "2025-01-13",
	}}, testActor)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Reapuntar una salida a otro lote devuelve la cantidad al lote original y la
// consume del nuevo.
func TestSaveBatch_UpdateReapuntaLote(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "100")
	seedLot(store, "20250110002", "X001", "50")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"),
	}, testActor)
	require.NoError(t, err)
	mov := results[0].Data.(*entity.Movement)

	q := dec("40")
	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowUpdate, ID: &mov.ID, LotID: "20250110002", ItemCode: "X001",
		Quantity: &q, Unit: "kg", IODate: "2025-01-13",
	}}, testActor)
	require.NoError(t, err)

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("100")), "el lote original recupera sus 30")
	assert.True(t, store.Lots["20250110002"].Quantity.Equal(dec("10")), "el nuevo lote pierde 40")
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("110")), "150 - 40 = 110")
	assert.Equal(t, "20250110002", store.Movements[mov.ID].LotID)
}

// Actualizar un movimiento IN como si fuera salida es entrada inválida.
func TestSaveBatch_UpdateRechazaMovimientoIN(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "100")
	in := store.SeedMovement(entity.Movement{
		LotID: "20250110001", ItemCode: "X001", Direction: entity.DirectionIN,
		Quantity: dec("100"), Unit: "kg",
	})

	q := dec("10")
	_, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowUpdate, ID: &in.ID, LotID: "20250110001", ItemCode: "X001",
		Quantity: &q, Unit: "kg", IODate: "2025-01-13",
	}}, testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SaveBatch: bajas
// ──────────────────────────────────────────────────────────────────────────────

// Anular una salida devuelve la cantidad al lote y al balance y elimina la
// fila OUT del historial.
func TestSaveBatch_DeleteRevierteSalida(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "100")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"),
	}, testActor)
	require.NoError(t, err)
	mov := results[0].Data.(*entity.Movement)

	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowDelete, ID: &mov.ID,
	}}, testActor)
	require.NoError(t, err)

	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("100")))
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("100")))
	assert.Empty(t, store.Movements, "la fila OUT se elimina del historial")
}

// Si el lote original ya no existe, anular la salida restaura solo el
// balance, recreando la fila si hace falta.
func TestSaveBatch_DeleteConLoteEliminado(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "30")

	results, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"),
	}, testActor)
	require.NoError(t, err)
	mov := results[0].Data.(*entity.Movement)

	// El lote quedó en cero y el balance sin fila; simulamos además la baja
	// del lote.
	delete(store.Lots, "20250110001")
	require.Nil(t, store.Balances["X001"])

	_, err = uc.SaveBatch(context.Background(), []dto.OutboundRow{{
		RowStatus: dto.RowDelete, ID: &mov.ID,
	}}, testActor)
	require.NoError(t, err)

	assert.Nil(t, store.Lots["20250110001"], "el lote eliminado no se recrea")
	require.NotNil(t, store.Balances["X001"], "el balance sí se restaura")
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("30")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo de conciliación
// ──────────────────────────────────────────────────────────────────────────────

// Recorrido entradas/salidas sobre dos lotes del mismo artículo verificando
// la identidad balance == Σ cantidad restante de los lotes en cada paso.
func TestEscenarioConciliacion(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	checkIdentity := func(msg string) {
		t.Helper()
		sum := decimal.Zero
		for _, lot := range store.Lots {
			if lot.ItemCode == "X001" {
				sum = sum.Add(lot.Quantity)
			}
		}
		got := decimal.Zero
		if bal := store.Balances["X001"]; bal != nil {
			got = bal.Quantity
		}
		assert.True(t, got.Equal(sum), "%s: balance %s != Σ lotes %s", msg, got, sum)
	}

	seedLot(store, "20250110001", "X001", "100")
	seedLot(store, "20250110002", "X001", "50")
	checkIdentity("estado inicial 150")

	// Salida de 30 contra el primer lote.
	_, err := uc.SaveBatch(ctx, []dto.OutboundRow{insertRow("20250110001", "X001", "30")}, testActor)
	require.NoError(t, err)
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("120")))
	checkIdentity("tras salida de 30")

	// Lote atómico mixto con fila insuficiente: nada cambia.
	_, err = uc.SaveBatch(ctx, []dto.OutboundRow{
		insertRow("20250110002", "X001", "20"),
		insertRow("20250110001", "X001", "80"), // lote 1 tiene solo 70
	}, testActor)
	require.Error(t, err)
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("120")), "el rollback preserva el estado previo")
	checkIdentity("tras rollback")

	// Lote atómico válido contra ambos lotes.
	_, err = uc.SaveBatch(ctx, []dto.OutboundRow{
		insertRow("20250110002", "X001", "20"),
		insertRow("20250110001", "X001", "70"),
	}, testActor)
	require.NoError(t, err)
	require.NotNil(t, store.Lots["20250110001"], "un lote agotado conserva su fila")
	assert.True(t, store.Lots["20250110001"].Quantity.Equal(dec("0")))
	checkIdentity("tras consumir el lote 1 por completo")
	assert.True(t, store.Balances["X001"].Quantity.Equal(dec("30")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByLot(t *testing.T) {
	uc, store, _ := newFixture()
	seedLot(store, "20250110001", "X001", "100")
	store.SeedMovement(entity.Movement{
		LotID: "20250110001", ItemCode: "X001", Direction: entity.DirectionIN,
		Quantity: dec("100"), Unit: "kg", MovementDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	_, err := uc.SaveBatch(context.Background(), []dto.OutboundRow{
		insertRow("20250110001", "X001", "30"),
	}, testActor)
	require.NoError(t, err)

	movs, err := uc.ListByLot("20250110001")
	require.NoError(t, err)
	assert.Len(t, movs, 2, "el historial del lote incluye el IN y el OUT")

	_, err = uc.ListByLot("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
