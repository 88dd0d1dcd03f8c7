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

// CodeUseCase mantiene los códigos comunes de la aplicación: grupos y sus
// detalles. El guardado en lote es a mejor esfuerzo, como el maestro de
// artículos.
type CodeUseCase struct {
	groupRepo  repository.CodeGroupRepository
	detailRepo repository.CodeDetailRepository
	recorder   audit.Recorder
}

// NewCodeUseCase construye el caso de uso.
func NewCodeUseCase(groupRepo repository.CodeGroupRepository, detailRepo repository.CodeDetailRepository, recorder audit.Recorder) *CodeUseCase {
	return &CodeUseCase{groupRepo: groupRepo, detailRepo: detailRepo, recorder: recorder}
}

// CreateGroup da de alta un grupo de códigos.
func (uc *CodeUseCase) CreateGroup(row dto.CodeGroupRow, actor audit.Actor) (*entity.CodeGroup, error) {
	if row.GrpCode == "" || row.Name == nil || *row.Name == "" {
		return nil, fmt.Errorf("%w: grp_code y name son obligatorios", domain.ErrInvalidInput)
	}
	now := time.Now()
	group := &entity.CodeGroup{
		GrpCode:   row.GrpCode,
		Name:      *row.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if row.Description != nil {
		group.Description = *row.Description
	}
	if row.Order != nil {
		group.Order = *row.Order
	}
	if row.IsActive != nil {
		group.IsActive = *row.IsActive
	}
	if err := uc.groupRepo.Create(group); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "code_groups",
		RecordID:    group.GrpCode,
		Operation:   entity.OpInsert,
		NewValue:    group,
		Description: "alta de grupo de códigos",
	})
	return group, nil
}

// UpdateGroup aplica una actualización parcial: los campos nil no se tocan.
func (uc *CodeUseCase) UpdateGroup(row dto.CodeGroupRow, actor audit.Actor) (*entity.CodeGroup, error) {
	if row.GrpCode == "" {
		return nil, fmt.Errorf("%w: grp_code es obligatorio", domain.ErrInvalidInput)
	}
	group, err := uc.groupRepo.GetByCode(row.GrpCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("%w: grupo %s", domain.ErrNotFound, row.GrpCode)
	}
	old := *group

	if row.Name != nil {
		if *row.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		group.Name = *row.Name
	}
	if row.Description != nil {
		group.Description = *row.Description
	}
	if row.Order != nil {
		group.Order = *row.Order
	}
	if row.IsActive != nil {
		group.IsActive = *row.IsActive
	}
	group.UpdatedAt = time.Now()

	if err := uc.groupRepo.Update(group); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "code_groups",
		RecordID:    group.GrpCode,
		Operation:   entity.OpUpdate,
		OldValue:    &old,
		NewValue:    group,
		Description: "modificación de grupo de códigos",
	})
	return group, nil
}

// DeleteGroup elimina un grupo; sus detalles caen en cascada.
func (uc *CodeUseCase) DeleteGroup(grpCode string, actor audit.Actor) error {
	if grpCode == "" {
		return fmt.Errorf("%w: grp_code es obligatorio", domain.ErrInvalidInput)
	}
	group, err := uc.groupRepo.GetByCode(grpCode)
	if err != nil {
		return err
	}
	if group == nil {
		return fmt.Errorf("%w: grupo %s", domain.ErrNotFound, grpCode)
	}
	if err := uc.groupRepo.Delete(grpCode); err != nil {
		return err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "code_groups",
		RecordID:    grpCode,
		Operation:   entity.OpDelete,
		OldValue:    group,
		Description: "baja de grupo de códigos",
	})
	return nil
}

// SaveGroups guarda filas I/U/D de grupos a mejor esfuerzo.
func (uc *CodeUseCase) SaveGroups(rows []dto.CodeGroupRow, actor audit.Actor) []dto.RowResult {
	return batch.BestEffort(len(rows), func(i int) (any, error) {
		row := rows[i]
		switch row.RowStatus {
		case dto.RowInsert:
			group, err := uc.CreateGroup(row, actor)
			if err != nil {
				return nil, err
			}
			return toCodeGroupResponse(group), nil
		case dto.RowUpdate:
			group, err := uc.UpdateGroup(row, actor)
			if err != nil {
				return nil, err
			}
			return toCodeGroupResponse(group), nil
		case dto.RowDelete:
			if err := uc.DeleteGroup(row.GrpCode, actor); err != nil {
				return nil, err
			}
			return row.GrpCode, nil
		default:
			return nil, fmt.Errorf("%w: row_status %q desconocido", domain.ErrInvalidInput, row.RowStatus)
		}
	})
}

// GetGroup devuelve un grupo por código.
func (uc *CodeUseCase) GetGroup(grpCode string) (*dto.CodeGroupResponse, error) {
	group, err := uc.groupRepo.GetByCode(grpCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("%w: grupo %s", domain.ErrNotFound, grpCode)
	}
	resp := toCodeGroupResponse(group)
	return &resp, nil
}

// ListGroups devuelve todos los grupos.
func (uc *CodeUseCase) ListGroups() ([]dto.CodeGroupResponse, error) {
	groups, err := uc.groupRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CodeGroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, toCodeGroupResponse(group))
	}
	return out, nil
}

// CreateDetail da de alta un código dentro de un grupo existente.
func (uc *CodeUseCase) CreateDetail(row dto.CodeDetailRow, actor audit.Actor) (*entity.CodeDetail, error) {
	if row.GrpCode == "" || row.Code == "" || row.Name == nil || *row.Name == "" {
		return nil, fmt.Errorf("%w: grp_code, code y name son obligatorios", domain.ErrInvalidInput)
	}
	group, err := uc.groupRepo.GetByCode(row.GrpCode)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("%w: grupo %s", domain.ErrNotFound, row.GrpCode)
	}

	now := time.Now()
	detail := &entity.CodeDetail{
		GrpCode:   row.GrpCode,
		Code:      row.Code,
		Name:      *row.Name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if row.Value != nil {
		detail.Value = *row.Value
	}
	if row.Description != nil {
		detail.Description = *row.Description
	}
	if row.Order != nil {
		detail.Order = *row.Order
	}
	if row.IsActive != nil {
		detail.IsActive = *row.IsActive
	}
	if err := uc.detailRepo.Create(detail); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "code_details",
		RecordID:    detail.GrpCode + "/" + detail.Code,
		Operation:   entity.OpInsert,
		NewValue:    detail,
		Description: "alta de código común",
	})
	return detail, nil
}

// UpdateDetail aplica una actualización parcial sobre un código.
func (uc *CodeUseCase) UpdateDetail(row dto.CodeDetailRow, actor audit.Actor) (*entity.CodeDetail, error) {
	if row.GrpCode == "" || row.Code == "" {
		return nil, fmt.Errorf("%w: grp_code y code son obligatorios", domain.ErrInvalidInput)
	}
	detail, err := uc.detailRepo.Get(row.GrpCode, row.Code)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: código %s/%s", domain.ErrNotFound, row.GrpCode, row.Code)
	}
	old := *detail

	if row.Name != nil {
		if *row.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		detail.Name = *row.Name
	}
	if row.Value != nil {
		detail.Value = *row.Value
	}
	if row.Description != nil {
		detail.Description = *row.Description
	}
	if row.Order != nil {
		detail.Order = *row.Order
	}
	if row.IsActive != nil {
		detail.IsActive = *row.IsActive
	}
	detail.UpdatedAt = time.Now()

	if err := uc.detailRepo.Update(detail); err != nil {
		return nil, err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "code_details",
		RecordID:    detail.GrpCode + "/" + detail.Code,
		Operation:   entity.OpUpdate,
		OldValue:    &old,
		NewValue:    detail,
		Description: "modificación de código común",
	})
	return detail, nil
}

// DeleteDetail elimina un código de su grupo.
func (uc *CodeUseCase) DeleteDetail(grpCode, code string, actor audit.Actor) error {
	if grpCode == "" || code == "" {
		return fmt.Errorf("%w: grp_code y code son obligatorios", domain.ErrInvalidInput)
	}
	detail, err := uc.detailRepo.Get(grpCode, code)
	if err != nil {
		return err
	}
	if detail == nil {
		return fmt.Errorf("%w: código %s/%s", domain.ErrNotFound, grpCode, code)
	}
	if err := uc.detailRepo.Delete(grpCode, code); err != nil {
		return err
	}

	uc.recorder.Record(audit.Event{
		Actor:       actor,
		TableName:   "code_details",
		RecordID:    grpCode + "/" + code,
		Operation:   entity.OpDelete,
		OldValue:    detail,
		Description: "baja de código común",
	})
	return nil
}

// SaveDetails guarda filas I/U/D de códigos a mejor esfuerzo.
func (uc *CodeUseCase) SaveDetails(rows []dto.CodeDetailRow, actor audit.Actor) []dto.RowResult {
	return batch.BestEffort(len(rows), func(i int) (any, error) {
		row := rows[i]
		switch row.RowStatus {
		case dto.RowInsert:
			detail, err := uc.CreateDetail(row, actor)
			if err != nil {
				return nil, err
			}
			return toCodeDetailResponse(detail), nil
		case dto.RowUpdate:
			detail, err := uc.UpdateDetail(row, actor)
			if err != nil {
				return nil, err
			}
			return toCodeDetailResponse(detail), nil
		case dto.RowDelete:
			if err := uc.DeleteDetail(row.GrpCode, row.Code, actor); err != nil {
				return nil, err
			}
			return row.GrpCode + "/" + row.Code, nil
		default:
			return nil, fmt.Errorf("%w: row_status %q desconocido", domain.ErrInvalidInput, row.RowStatus)
		}
	})
}

// GetDetail devuelve un código por su clave compuesta.
func (uc *CodeUseCase) GetDetail(grpCode, code string) (*dto.CodeDetailResponse, error) {
	detail, err := uc.detailRepo.Get(grpCode, code)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: código %s/%s", domain.ErrNotFound, grpCode, code)
	}
	resp := toCodeDetailResponse(detail)
	return &resp, nil
}

// ListDetails devuelve todos los códigos, opcionalmente filtrados por grupo.
func (uc *CodeUseCase) ListDetails(grpCode string) ([]dto.CodeDetailResponse, error) {
	var (
		details []*entity.CodeDetail
		err     error
	)
	if grpCode != "" {
		details, err = uc.detailRepo.ListByGroup(grpCode)
	} else {
		details, err = uc.detailRepo.List()
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.CodeDetailResponse, 0, len(details))
	for _, detail := range details {
		out = append(out, toCodeDetailResponse(detail))
	}
	return out, nil
}

func toCodeGroupResponse(group *entity.CodeGroup) dto.CodeGroupResponse {
	return dto.CodeGroupResponse{
		GrpCode:     group.GrpCode,
		Name:        group.Name,
		Description: group.Description,
		Order:       group.Order,
		IsActive:    group.IsActive,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

func toCodeDetailResponse(detail *entity.CodeDetail) dto.CodeDetailResponse {
	return dto.CodeDetailResponse{
		GrpCode:     detail.GrpCode,
		Code:        detail.Code,
		Name:        detail.Name,
		Value:       detail.Value,
		Description: detail.Description,
		Order:       detail.Order,
		IsActive:    detail.IsActive,
		CreatedAt:   detail.CreatedAt,
		UpdatedAt:   detail.UpdatedAt,
	}
}
