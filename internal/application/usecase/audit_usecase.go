package usecase

import (
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// AuditUseCase consultas de solo lectura sobre el log de auditoría.
type AuditUseCase struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(auditRepo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// List devuelve las entradas más recientes, opcionalmente filtradas por
// tabla o por usuario. Los filtros son excluyentes entre sí.
func (uc *AuditUseCase) List(tableName, userID string, limit int) ([]*entity.AuditEntry, error) {
	limit = clampAuditLimit(limit)
	switch {
	case tableName != "":
		return uc.auditRepo.ListByTable(tableName, limit)
	case userID != "":
		return uc.auditRepo.ListByUser(userID, limit)
	default:
		return uc.auditRepo.List(limit)
	}
}

// ListByRecord devuelve la historia completa de un registro concreto.
func (uc *AuditUseCase) ListByRecord(tableName, recordID string) ([]*entity.AuditEntry, error) {
	if tableName == "" || recordID == "" {
		return nil, fmt.Errorf("%w: table y record_id son obligatorios", domain.ErrInvalidInput)
	}
	return uc.auditRepo.ListByRecord(tableName, recordID)
}

func clampAuditLimit(limit int) int {
	if limit <= 0 {
		return defaultAuditLimit
	}
	if limit > maxAuditLimit {
		return maxAuditLimit
	}
	return limit
}
