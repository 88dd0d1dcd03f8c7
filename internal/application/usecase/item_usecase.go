package usecase

import (
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/batch"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ItemUseCase mantiene el maestro de artículos. El guardado en lote es a
// mejor esfuerzo: cada fila se aplica por separado.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	recorder audit.Recorder
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, recorder audit.Recorder) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, recorder: recorder}
}

// Create da de alta un artículo. El código debe ser único.
func (uc *ItemUseCase) Create(row dto.ItemRow, actor audit.Actor) (*entity.Item, error) {
	if row.Code == "" || row.Name == nil || *row.Name == "" || row.Unit == nil || *row.Unit == "" {
		return nil, fmt.Errorf("%w: code, name y unit son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now()
	item := &entity.Item{
		Code:         row.Code,
		Name:         *row.Name,
		Unit:         *row.Unit,
		MaxUsePeriod: row.MaxUsePeriod,
		SafetyStock:  row.SafetyStock,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if row.Category != nil {
		item.Category = *row.Category
	}
	if row.Remark != nil {
		item.Remark = *row.Remark
	}
	if row.IsAlert != nil {
		item.IsAlert = *row.IsAlert
	}
	if row.IsActive != nil {
		item.IsActive = *row.IsActive
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "items",
		RecordID:    item.Code,
		Operation:   entity.OpInsert,
		NewValue:    item,
		Description: "alta de artículo",
	})
	return item, nil
}

// Update aplica una actualización parcial: los campos nil no se tocan.
func (uc *ItemUseCase) Update(row dto.ItemRow, actor audit.Actor) (*entity.Item, error) {
	if row.Code == "" {
		return nil, fmt.Errorf("%w: code es obligatorio", domain.ErrInvalidInput)
	}
	item, err := uc.itemRepo.GetByCode(row.Code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, row.Code)
	}
	old := *item

	if row.Name != nil {
		if *row.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		item.Name = *row.Name
	}
	if row.Category != nil {
		item.Category = *row.Category
	}
	if row.Unit != nil {
		item.Unit = *row.Unit
	}
	if row.MaxUsePeriod != nil {
		item.MaxUsePeriod = row.MaxUsePeriod
	}
	if row.SafetyStock != nil {
		item.SafetyStock = row.SafetyStock
	}
	if row.Remark != nil {
		item.Remark = *row.Remark
	}
	if row.IsAlert != nil {
		item.IsAlert = *row.IsAlert
	}
	if row.IsActive != nil {
		item.IsActive = *row.IsActive
	}
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "items",
		RecordID:    item.Code,
		Operation:   entity.OpUpdate,
		OldValue:    &old,
		NewValue:    item,
		Description: "modificación de artículo",
	})
	return item, nil
}

// Delete elimina un artículo del maestro. Los lotes y movimientos existentes
// conservan el código como referencia histórica.
func (uc *ItemUseCase) Delete(code string, actor audit.Actor) error {
	if code == "" {
		return fmt.Errorf("%w: code es obligatorio", domain.ErrInvalidInput)
	}
	item, err := uc.itemRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, code)
	}
	if err := uc.itemRepo.Delete(code); err != nil {
		return err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "items",
		RecordID:    code,
		Operation:   entity.OpDelete,
		OldValue:    item,
		Description: "baja de artículo",
	})
	return nil
}

// SaveBatch guarda filas I/U/D del maestro a mejor esfuerzo.
func (uc *ItemUseCase) SaveBatch(rows []dto.ItemRow, actor audit.Actor) []dto.RowResult {
	return batch.BestEffort(len(rows), func(i int) (any, error) {
		row := rows[i]
		switch row.RowStatus {
		case dto.RowInsert:
			item, err := uc.Create(row, actor)
			if err != nil {
				return nil, err
			}
			return toItemResponse(item), nil
		case dto.RowUpdate:
			item, err := uc.Update(row, actor)
			if err != nil {
				return nil, err
			}
			return toItemResponse(item), nil
		case dto.RowDelete:
			if err := uc.Delete(row.Code, actor); err != nil {
				return nil, err
			}
			return row.Code, nil
		default:
			return nil, fmt.Errorf("%w: row_status %q desconocido", domain.ErrInvalidInput, row.RowStatus)
		}
	})
}

// GetByCode devuelve un artículo del maestro.
func (uc *ItemUseCase) GetByCode(code string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, code)
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// List devuelve el maestro completo, opcionalmente filtrado por categoría.
func (uc *ItemUseCase) List(category string) ([]dto.ItemResponse, error) {
	var (
		items []*entity.Item
		err   error
	)
	if category != "" {
		items, err = uc.itemRepo.ListByCategory(category)
	} else {
		items, err = uc.itemRepo.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out, nil
}

func toItemResponse(item *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		Code:         item.Code,
		Name:         item.Name,
		Category:     item.Category,
		Unit:         item.Unit,
		MaxUsePeriod: item.MaxUsePeriod,
		SafetyStock:  item.SafetyStock,
		Remark:       item.Remark,
		IsAlert:      item.IsAlert,
		IsActive:     item.IsActive,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
