// Package outbound implementa el flujo de despacho: consumo contra lotes con
// bloqueo de fila, ajuste del balance por artículo y mantenimiento del
// historial OUT. El guardado en lote es atómico: todas las filas o ninguna.
package outbound

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/balanceops"
	"github.com/tu-usuario/almacen-api/internal/application/batch"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase caso de uso de salidas. Las mutaciones corren en una única
// transacción por petición; las consultas usan el repositorio atado al pool.
type UseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	recorder audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, movRepo repository.MovementRepository, recorder audit.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, movRepo: movRepo, recorder: recorder}
}

// SaveBatch aplica filas I/U/D de salida en una sola transacción. El primer
// error revierte todo el lote y se devuelve al caller; los eventos de
// auditoría se emiten solo tras el Commit.
func (uc *UseCase) SaveBatch(ctx context.Context, rows []dto.OutboundRow, actor audit.Actor) ([]dto.RowResult, error) {
	var results []dto.RowResult
	var events []audit.Event

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		var err error
		results, err = batch.Atomic(len(rows), func(i int) (any, error) {
			row := rows[i]
			var (
				data  any
				event audit.Event
				err   error
			)
			switch row.RowStatus {
			case dto.RowInsert:
				data, event, err = applyInsert(lotRepo, movRepo, balanceRepo, row, actor)
			case dto.RowUpdate:
				data, event, err = applyUpdate(lotRepo, movRepo, balanceRepo, row, actor)
			case dto.RowDelete:
				data, event, err = applyDelete(lotRepo, movRepo, balanceRepo, row, actor)
			default:
				err = fmt.Errorf("%w: row_status %q desconocido", domain.ErrInvalidInput, row.RowStatus)
			}
			if err != nil {
				return nil, fmt.Errorf("fila %d: %w", i+1, err)
			}
			events = append(events, event)
			return data, nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		uc.recorder.Record(event)
	}
	return results, nil
}

// applyInsert registra una salida: bloquea el lote, verifica disponibilidad,
// descuenta lote y balance y crea el movimiento OUT.
func applyInsert(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	row dto.OutboundRow,
	actor audit.Actor,
) (*entity.Movement, audit.Event, error) {
	if err := validateRow(row); err != nil {
		return nil, audit.Event{}, err
	}
	ioDate, err := parseDate(row.IODate)
	if err != nil {
		return nil, audit.Event{}, err
	}

	lot, err := lotRepo.GetForUpdate(row.LotID)
	if err != nil {
		return nil, audit.Event{}, err
	}
	if lot == nil {
		return nil, audit.Event{}, fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, row.LotID)
	}
	if err := checkLotItem(lot, row.ItemCode); err != nil {
		return nil, audit.Event{}, err
	}

	qty := *row.Quantity
	if lot.Quantity.LessThan(qty) {
		return nil, audit.Event{}, insufficientErr(lot.Quantity, lot.Unit, qty, row.Unit)
	}

	now := time.Now()
	lot.Quantity = lot.Quantity.Sub(qty)
	if err := lotRepo.Update(lot); err != nil {
		return nil, audit.Event{}, err
	}
	if err := balanceops.Decrement(balanceRepo, lot.ItemCode, qty, now); err != nil {
		return nil, audit.Event{}, err
	}

	mov := &entity.Movement{
		LotID:        row.LotID,
		ItemCode:     row.ItemCode,
		Direction:    entity.DirectionOUT,
		Quantity:     qty,
		MovementDate: ioDate,
		Unit:         row.Unit,
		Remark:       row.Remark,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, audit.Event{}, err
	}

	event := audit.Event{
		Actor:       actor,
		TableName:   "movements",
		RecordID:    strconv.FormatInt(mov.ID, 10),
		Operation:   entity.OpInsert,
		NewValue:    mov,
		Description: "alta de salida",
	}
	return mov, event, nil
}

// applyUpdate corrige una salida existente. Si el lote no cambia se ajusta
// por diferencia; si cambia, se revierte el efecto sobre el lote original y
// se aplica completo sobre el nuevo.
func applyUpdate(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	row dto.OutboundRow,
	actor audit.Actor,
) (*entity.Movement, audit.Event, error) {
	if row.ID == nil {
		return nil, audit.Event{}, fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateRow(row); err != nil {
		return nil, audit.Event{}, err
	}
	ioDate, err := parseDate(row.IODate)
	if err != nil {
		return nil, audit.Event{}, err
	}

	mov, err := movRepo.GetByID(*row.ID)
	if err != nil {
		return nil, audit.Event{}, err
	}
	if mov == nil {
		return nil, audit.Event{}, fmt.Errorf("%w: movimiento %d", domain.ErrMovementNotFound, *row.ID)
	}
	if mov.Direction != entity.DirectionOUT {
		return nil, audit.Event{}, fmt.Errorf("%w: el movimiento %d no es de salida", domain.ErrInvalidInput, *row.ID)
	}

	old := *mov
	qty := *row.Quantity
	now := time.Now()

	if mov.LotID == row.LotID {
		lot, err := lotRepo.GetForUpdate(row.LotID)
		if err != nil {
			return nil, audit.Event{}, err
		}
		if lot == nil {
			return nil, audit.Event{}, fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, row.LotID)
		}
		if err := checkLotItem(lot, row.ItemCode); err != nil {
			return nil, audit.Event{}, err
		}
		// Disponible efectivo: lo que queda en el lote más lo que esta
		// salida ya había consumido.
		available := lot.Quantity.Add(old.Quantity)
		if available.LessThan(qty) {
			return nil, audit.Event{}, insufficientErr(available, lot.Unit, qty, row.Unit)
		}
		lot.Quantity = available.Sub(qty)
		if err := lotRepo.Update(lot); err != nil {
			return nil, audit.Event{}, err
		}
		diff := old.Quantity.Sub(qty)
		if diff.IsPositive() {
			if err := balanceops.Increment(balanceRepo, lot.ItemCode, diff, lot.Unit, now); err != nil {
				return nil, audit.Event{}, err
			}
		} else if diff.IsNegative() {
			if err := balanceops.Decrement(balanceRepo, lot.ItemCode, diff.Neg(), now); err != nil {
				return nil, audit.Event{}, err
			}
		}
	} else {
		// Revertir sobre el lote original. Si ya fue eliminado se restaura
		// solo el balance.
		oldLot, err := lotRepo.GetForUpdate(mov.LotID)
		if err != nil {
			return nil, audit.Event{}, err
		}
		if oldLot != nil {
			oldLot.Quantity = oldLot.Quantity.Add(old.Quantity)
			if err := lotRepo.Update(oldLot); err != nil {
				return nil, audit.Event{}, err
			}
		}
		if err := balanceops.Increment(balanceRepo, old.ItemCode, old.Quantity, old.Unit, now); err != nil {
			return nil, audit.Event{}, err
		}

		newLot, err := lotRepo.GetForUpdate(row.LotID)
		if err != nil {
			return nil, audit.Event{}, err
		}
		if newLot == nil {
			return nil, audit.Event{}, fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, row.LotID)
		}
		if err := checkLotItem(newLot, row.ItemCode); err != nil {
			return nil, audit.Event{}, err
		}
		if newLot.Quantity.LessThan(qty) {
			return nil, audit.Event{}, insufficientErr(newLot.Quantity, newLot.Unit, qty, row.Unit)
		}
		newLot.Quantity = newLot.Quantity.Sub(qty)
		if err := lotRepo.Update(newLot); err != nil {
			return nil, audit.Event{}, err
		}
		if err := balanceops.Decrement(balanceRepo, newLot.ItemCode, qty, now); err != nil {
			return nil, audit.Event{}, err
		}
	}

	mov.LotID = row.LotID
	mov.ItemCode = row.ItemCode
	mov.Quantity = qty
	mov.Unit = row.Unit
	mov.MovementDate = ioDate
	mov.Remark = row.Remark
	mov.UpdatedAt = now
	if err := movRepo.Update(mov); err != nil {
		return nil, audit.Event{}, err
	}

	event := audit.Event{
		Actor:       actor,
		TableName:   "movements",
		RecordID:    strconv.FormatInt(mov.ID, 10),
		Operation:   entity.OpUpdate,
		OldValue:    &old,
		NewValue:    mov,
		Description: "modificación de salida",
	}
	return mov, event, nil
}

// applyDelete revierte una salida: devuelve la cantidad al lote si aún existe
// y siempre la devuelve al balance, recreando la fila si hace falta.
func applyDelete(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	row dto.OutboundRow,
	actor audit.Actor,
) (any, audit.Event, error) {
	if row.ID == nil {
		return nil, audit.Event{}, fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}

	mov, err := movRepo.GetByID(*row.ID)
	if err != nil {
		return nil, audit.Event{}, err
	}
	if mov == nil {
		return nil, audit.Event{}, fmt.Errorf("%w: movimiento %d", domain.ErrMovementNotFound, *row.ID)
	}
	if mov.Direction != entity.DirectionOUT {
		return nil, audit.Event{}, fmt.Errorf("%w: el movimiento %d no es de salida", domain.ErrInvalidInput, *row.ID)
	}

	now := time.Now()
	lot, err := lotRepo.GetForUpdate(mov.LotID)
	if err != nil {
		return nil, audit.Event{}, err
	}
	if lot != nil {
		lot.Quantity = lot.Quantity.Add(mov.Quantity)
		if err := lotRepo.Update(lot); err != nil {
			return nil, audit.Event{}, err
		}
	}
	if err := balanceops.Increment(balanceRepo, mov.ItemCode, mov.Quantity, mov.Unit, now); err != nil {
		return nil, audit.Event{}, err
	}
	if err := movRepo.Delete(mov.ID); err != nil {
		return nil, audit.Event{}, err
	}

	event := audit.Event{
		Actor:       actor,
		TableName:   "movements",
		RecordID:    strconv.FormatInt(mov.ID, 10),
		Operation:   entity.OpDelete,
		OldValue:    mov,
		Description: "baja de salida",
	}
	return mov.ID, event, nil
}

// Search lista el historial de movimientos según filtros. Direction vacío
// devuelve entradas y salidas.
func (uc *UseCase) Search(req dto.MovementSearchRequest) ([]dto.MovementResponse, error) {
	filter := repository.MovementFilter{
		Direction: req.Direction,
		ItemCode:  req.ItemCode,
		ItemName:  req.ItemName,
	}
	if req.StartDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &end
	}
	rows, err := uc.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(rows), nil
}

// ListOutbound lista solo las salidas.
func (uc *UseCase) ListOutbound(req dto.MovementSearchRequest) ([]dto.MovementResponse, error) {
	req.Direction = entity.DirectionOUT
	return uc.Search(req)
}

// ListByLot lista los movimientos de un lote concreto.
func (uc *UseCase) ListByLot(lotID string) ([]dto.MovementResponse, error) {
	if lotID == "" {
		return nil, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}
	rows, err := uc.movRepo.List(repository.MovementFilter{LotID: lotID})
	if err != nil {
		return nil, err
	}
	return toMovementResponses(rows), nil
}

func validateRow(row dto.OutboundRow) error {
	if row.LotID == "" || row.ItemCode == "" || row.Unit == "" || row.IODate == "" || row.Quantity == nil {
		return fmt.Errorf("%w: lot_id, item_code, quantity, unit e io_date son obligatorios", domain.ErrInvalidInput)
	}
	if !row.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

// checkLotItem exige que la fila refiera al artículo dueño del lote. El
// movimiento y el lote quedan siempre con el mismo item_code, así cada
// reversión ajusta el mismo balance que la salida descontó.
func checkLotItem(lot *entity.Lot, itemCode string) error {
	if itemCode != lot.ItemCode {
		return fmt.Errorf("%w: item_code %s no coincide con el artículo %s del lote %s",
			domain.ErrInvalidInput, itemCode, lot.ItemCode, lot.LotID)
	}
	return nil
}

func insufficientErr(available decimal.Decimal, availableUnit string, requested decimal.Decimal, requestedUnit string) error {
	return fmt.Errorf("%w: disponible %s %s, solicitado %s %s",
		domain.ErrInsufficientStock, available.String(), availableUnit, requested.String(), requestedUnit)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q, se espera yyyy-MM-dd", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func toMovementResponses(rows []repository.MovementRow) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMovementResponse(row))
	}
	return out
}

func toMovementResponse(row repository.MovementRow) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:        row.ID,
		LotID:     row.LotID,
		ItemCode:  row.ItemCode,
		ItemName:  row.ItemName,
		Direction: row.Direction,
		Quantity:  row.Quantity,
		Unit:      row.Unit,
		IODate:    row.MovementDate.Format(dateLayout),
		Remark:    row.Remark,
		CreatedAt: row.CreatedAt,
	}
	if row.ReceivedDate != nil {
		s := row.ReceivedDate.Format(dateLayout)
		resp.ReceivedDate = &s
	}
	if row.PreparationDate != nil {
		s := row.PreparationDate.Format(dateLayout)
		resp.PreparationDate = &s
	}
	if row.ExpiryDate != nil {
		s := row.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &s
	}
	return resp
}
