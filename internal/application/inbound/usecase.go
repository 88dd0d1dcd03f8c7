// Package inbound implementa el flujo de recepción: alta de lotes con número
// correlativo por fecha, ajuste del balance por artículo y registro del
// movimiento IN, todo dentro de una transacción por fila.
package inbound

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/balanceops"
	"github.com/tu-usuario/almacen-api/internal/application/batch"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/internal/domain/stock"
)

const dateLayout = "2006-01-02"

// UseCase caso de uso de entradas. Las mutaciones corren en transacción vía
// txRunner; las consultas usan el repositorio atado al pool.
type UseCase struct {
	txRunner TxRunner
	lotRepo  repository.LotRepository
	recorder audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, lotRepo repository.LotRepository, recorder audit.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, lotRepo: lotRepo, recorder: recorder}
}

// CreateInput entrada para registrar un lote nuevo.
type CreateInput struct {
	ItemCode        string
	Quantity        decimal.Decimal
	Unit            string
	ReceivedDate    time.Time
	PreparationDate *time.Time
	Remark          string
}

// UpdateInput actualización parcial de un lote: nil significa "no tocar".
type UpdateInput struct {
	LotID           string
	ItemCode        *string
	Quantity        *decimal.Decimal
	Unit            *string
	ReceivedDate    *time.Time
	PreparationDate *time.Time
	Remark          *string
}

// Create registra un lote: numera bajo el lock de secuencia de su fecha,
// persiste el lote, suma al balance del artículo y crea el movimiento IN.
func (uc *UseCase) Create(ctx context.Context, input CreateInput, actor audit.Actor) (*entity.Lot, error) {
	if input.ItemCode == "" || input.Unit == "" {
		return nil, fmt.Errorf("%w: item_code y unit son obligatorios", domain.ErrInvalidInput)
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if input.ReceivedDate.IsZero() {
		return nil, fmt.Errorf("%w: received_date es obligatorio", domain.ErrInvalidInput)
	}

	now := time.Now()
	received := stock.Normalize(input.ReceivedDate)
	var prep *time.Time
	if input.PreparationDate != nil {
		p := stock.Normalize(*input.PreparationDate)
		prep = &p
	}

	var created *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		prefix := stock.DatePrefix(received)
		if err := lotRepo.LockSequence(prefix); err != nil {
			return err
		}
		last, err := lotRepo.LastIDWithPrefix(prefix)
		if err != nil {
			return err
		}
		lotID, err := stock.NextLotID(received, last)
		if err != nil {
			return err
		}

		lot := &entity.Lot{
			LotID:           lotID,
			ItemCode:        input.ItemCode,
			ReceivedDate:    received,
			PreparationDate: prep,
			Quantity:        input.Quantity,
			Unit:            input.Unit,
			Remark:          input.Remark,
			CreatedAt:       now,
		}
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		if err := balanceops.Increment(balanceRepo, lot.ItemCode, lot.Quantity, lot.Unit, now); err != nil {
			return err
		}
		mov := &entity.Movement{
			LotID:        lot.LotID,
			ItemCode:     lot.ItemCode,
			Direction:    entity.DirectionIN,
			Quantity:     lot.Quantity,
			MovementDate: received,
			Unit:         lot.Unit,
			Remark:       lot.Remark,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = lot
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "lots",
		RecordID:    created.LotID,
		Operation:   entity.OpInsert,
		NewValue:    created,
		Description: "alta de lote de entrada",
	})
	return created, nil
}

// Update aplica una actualización parcial sobre un lote bloqueado y ajusta el
// balance según el cambio de artículo o cantidad. El movimiento IN original
// no se toca: el historial conserva la cantidad recibida.
func (uc *UseCase) Update(ctx context.Context, input UpdateInput, actor audit.Actor) (*entity.Lot, error) {
	if input.LotID == "" {
		return nil, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}

	var before, after *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(input.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, input.LotID)
		}
		old := *lot
		before = &old

		if input.ItemCode != nil {
			if *input.ItemCode == "" {
				return fmt.Errorf("%w: item_code no puede quedar vacío", domain.ErrInvalidInput)
			}
			lot.ItemCode = *input.ItemCode
		}
		if input.Quantity != nil {
			if input.Quantity.IsNegative() {
				return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
			}
			lot.Quantity = *input.Quantity
		}
		if input.Unit != nil {
			lot.Unit = *input.Unit
		}
		if input.ReceivedDate != nil {
			lot.ReceivedDate = stock.Normalize(*input.ReceivedDate)
		}
		if input.PreparationDate != nil {
			p := stock.Normalize(*input.PreparationDate)
			lot.PreparationDate = &p
		}
		if input.Remark != nil {
			lot.Remark = *input.Remark
		}

		now := time.Now()
		if lot.ItemCode != old.ItemCode {
			// El lote cambia de artículo: el balance viejo pierde toda la
			// cantidad anterior y el nuevo gana toda la actual.
			if err := balanceops.Decrement(balanceRepo, old.ItemCode, old.Quantity, now); err != nil {
				return err
			}
			if err := balanceops.Increment(balanceRepo, lot.ItemCode, lot.Quantity, lot.Unit, now); err != nil {
				return err
			}
		} else {
			diff := lot.Quantity.Sub(old.Quantity)
			if diff.IsPositive() {
				if err := balanceops.Increment(balanceRepo, lot.ItemCode, diff, lot.Unit, now); err != nil {
					return err
				}
			} else if diff.IsNegative() {
				if err := balanceops.Decrement(balanceRepo, lot.ItemCode, diff.Neg(), now); err != nil {
					return err
				}
			}
		}

		if err := lotRepo.Update(lot); err != nil {
			return err
		}
		after = lot
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "lots",
		RecordID:    after.LotID,
		Operation:   entity.OpUpdate,
		OldValue:    before,
		NewValue:    after,
		Description: "modificación de lote de entrada",
	})
	return after, nil
}

// Delete elimina un lote restando su cantidad restante del balance. Los
// movimientos asociados se conservan como historial.
func (uc *UseCase) Delete(ctx context.Context, lotID string, actor audit.Actor) error {
	if lotID == "" {
		return fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}

	var deleted *entity.Lot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, lotID)
		}
		if err := balanceops.Decrement(balanceRepo, lot.ItemCode, lot.Quantity, time.Now()); err != nil {
			return err
		}
		if err := lotRepo.Delete(lot.LotID); err != nil {
			return err
		}
		deleted = lot
		return nil
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "lots",
		RecordID:    deleted.LotID,
		Operation:   entity.OpDelete,
		OldValue:    deleted,
		Description: "baja de lote de entrada",
	})
	return nil
}

// SaveBatch guarda filas I/U/D a mejor esfuerzo: cada fila corre en su propia
// transacción y un fallo no detiene las demás. Devuelve un resultado por fila
// en el mismo orden de entrada.
func (uc *UseCase) SaveBatch(ctx context.Context, rows []dto.InboundRow, actor audit.Actor) []dto.RowResult {
	return batch.BestEffort(len(rows), func(i int) (any, error) {
		row := rows[i]
		switch row.RowStatus {
		case dto.RowInsert:
			input, err := createInputFromRow(row)
			if err != nil {
				return nil, err
			}
			return uc.Create(ctx, input, actor)
		case dto.RowUpdate:
			input, err := updateInputFromRow(row)
			if err != nil {
				return nil, err
			}
			return uc.Update(ctx, input, actor)
		case dto.RowDelete:
			if err := uc.Delete(ctx, row.LotID, actor); err != nil {
				return nil, err
			}
			return row.LotID, nil
		default:
			return nil, fmt.Errorf("%w: row_status %q desconocido", domain.ErrInvalidInput, row.RowStatus)
		}
	})
}

// Search lista lotes según filtros de fecha y maestro.
func (uc *UseCase) Search(req dto.InboundSearchRequest) ([]dto.LotResponse, error) {
	filter := repository.LotFilter{ItemCode: req.ItemCode, ItemName: req.ItemName}
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
	rows, err := uc.lotRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return toLotResponses(rows), nil
}

// ListByItem lista los lotes vivos de un artículo.
func (uc *UseCase) ListByItem(itemCode string) ([]dto.LotResponse, error) {
	if itemCode == "" {
		return nil, fmt.Errorf("%w: item_code es obligatorio", domain.ErrInvalidInput)
	}
	rows, err := uc.lotRepo.ListByItem(itemCode)
	if err != nil {
		return nil, err
	}
	return toLotResponses(rows), nil
}

// ListByDate lista los lotes recibidos en una fecha concreta.
func (uc *UseCase) ListByDate(date string) ([]dto.LotResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	rows, err := uc.lotRepo.ListByDate(d)
	if err != nil {
		return nil, err
	}
	return toLotResponses(rows), nil
}

func createInputFromRow(row dto.InboundRow) (CreateInput, error) {
	if row.ItemCode == nil || row.Quantity == nil || row.Unit == nil || row.ReceivedDate == nil {
		return CreateInput{}, fmt.Errorf("%w: item_code, quantity, unit y received_date son obligatorios", domain.ErrInvalidInput)
	}
	received, err := parseDate(*row.ReceivedDate)
	if err != nil {
		return CreateInput{}, err
	}
	input := CreateInput{
		ItemCode:     *row.ItemCode,
		Quantity:     *row.Quantity,
		Unit:         *row.Unit,
		ReceivedDate: received,
	}
	if row.PreparationDate != nil {
		prep, err := parseDate(*row.PreparationDate)
		if err != nil {
			return CreateInput{}, err
		}
		input.PreparationDate = &prep
	}
	if row.Remark != nil {
		input.Remark = *row.Remark
	}
	return input, nil
}

func updateInputFromRow(row dto.InboundRow) (UpdateInput, error) {
	if row.LotID == "" {
		return UpdateInput{}, fmt.Errorf("%w: lot_id es obligatorio", domain.ErrInvalidInput)
	}
	input := UpdateInput{
		LotID:    row.LotID,
		ItemCode: row.ItemCode,
		Quantity: row.Quantity,
		Unit:     row.Unit,
		Remark:   row.Remark,
	}
	if row.ReceivedDate != nil {
		received, err := parseDate(*row.ReceivedDate)
		if err != nil {
			return UpdateInput{}, err
		}
		input.ReceivedDate = &received
	}
	if row.PreparationDate != nil {
		prep, err := parseDate(*row.PreparationDate)
		if err != nil {
			return UpdateInput{}, err
		}
		input.PreparationDate = &prep
	}
	return input, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q, se espera yyyy-MM-dd", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func toLotResponses(rows []repository.LotRow) []dto.LotResponse {
	out := make([]dto.LotResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLotResponse(row))
	}
	return out
}

func toLotResponse(row repository.LotRow) dto.LotResponse {
	resp := dto.LotResponse{
		LotID:        row.LotID,
		ItemCode:     row.ItemCode,
		ItemName:     row.ItemName,
		ReceivedDate: row.ReceivedDate.Format(dateLayout),
		Quantity:     row.Quantity,
		Unit:         row.Unit,
		MaxUsePeriod: row.MaxUsePeriod,
		Remark:       row.Remark,
		CreatedAt:    row.CreatedAt,
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
