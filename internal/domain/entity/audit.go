package entity

import "time"

// Operaciones registradas en el log de auditoría.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// AuditEntry es una entrada del log de auditoría. OldValue/NewValue llevan
// snapshots JSON del registro antes y después de la operación.
type AuditEntry struct {
	ID          int64
	UserID      string
	Username    string
	Timestamp   time.Time
	TableName   string
	RecordID    string
	Operation   string // INSERT, UPDATE, DELETE
	OldValue    string
	NewValue    string
	IPAddress   string
	Description string
}
