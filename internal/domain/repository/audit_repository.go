package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para el log de auditoría.
type AuditLogRepository interface {
	Create(entry *entity.AuditEntry) error
	List(limit int) ([]*entity.AuditEntry, error)
	ListByTable(tableName string, limit int) ([]*entity.AuditEntry, error)
	ListByUser(userID string, limit int) ([]*entity.AuditEntry, error)
	ListByRecord(tableName, recordID string) ([]*entity.AuditEntry, error)
}
