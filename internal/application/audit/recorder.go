// Package audit implementa el registro de auditoría como colaborador
// inyectado. Un fallo al auditar nunca aborta la operación principal:
// se registra en el log y se descarta.
package audit

import (
	"encoding/json"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

// Actor identifica al usuario que ejecuta la operación auditada.
type Actor struct {
	UserID   string
	Username string
}

// Event describe una mutación a auditar. OldValue/NewValue son los registros
// antes y después; se serializan a JSON al persistir.
type Event struct {
	Actor       Actor
	TableName   string
	RecordID    string
	Operation   string // entity.OpInsert | OpUpdate | OpDelete
	OldValue    any
	NewValue    any
	Description string
}

// Recorder es la capacidad única de auditoría que consumen los casos de uso.
type Recorder interface {
	Record(event Event)
}

// LogRecorder persiste eventos en el repositorio de auditoría.
type LogRecorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

var _ Recorder = (*LogRecorder)(nil)

// NewLogRecorder construye el recorder con su repositorio y logger.
func NewLogRecorder(repo repository.AuditLogRepository, log *logger.Logger) *LogRecorder {
	return &LogRecorder{repo: repo, log: log}
}

// Record persiste el evento. Cualquier error se registra y se traga para no
// bloquear la escritura principal.
func (r *LogRecorder) Record(event Event) {
	entry := &entity.AuditEntry{
		UserID:      orSystem(event.Actor.UserID),
		Username:    orSystem(event.Actor.Username),
		Timestamp:   time.Now(),
		TableName:   event.TableName,
		RecordID:    event.RecordID,
		Operation:   event.Operation,
		OldValue:    marshal(event.OldValue),
		NewValue:    marshal(event.NewValue),
		Description: event.Description,
	}
	if err := r.repo.Create(entry); err != nil {
		r.log.Warn().Err(err).
			Str("table", event.TableName).
			Str("record_id", event.RecordID).
			Str("operation", event.Operation).
			Msg("fallo al guardar log de auditoría")
	}
}

func orSystem(s string) string {
	if s == "" {
		return "system"
	}
	return s
}

func marshal(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
