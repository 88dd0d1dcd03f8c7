package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL.
// Las entradas son inmutables: solo INSERT y SELECT.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador del log de auditoría.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, user_id, username, ts, table_name, record_id, operation, old_value, new_value, ip_address, description`

// Create inserta una entrada y asigna el id generado.
func (r *AuditLogRepo) Create(entry *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (user_id, username, ts, table_name, record_id, operation, old_value, new_value, ip_address, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		entry.UserID, entry.Username, entry.Timestamp, entry.TableName,
		entry.RecordID, entry.Operation, entry.OldValue, entry.NewValue,
		entry.IPAddress, entry.Description,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}
	return nil
}

// List devuelve las entradas más recientes.
func (r *AuditLogRepo) List(limit int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log ORDER BY id DESC LIMIT $1`
	return r.list(query, limit)
}

// ListByTable devuelve las entradas más recientes de una tabla.
func (r *AuditLogRepo) ListByTable(tableName string, limit int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE table_name = $1 ORDER BY id DESC LIMIT $2`
	return r.list(query, tableName, limit)
}

// ListByUser devuelve las entradas más recientes de un usuario.
func (r *AuditLogRepo) ListByUser(userID string, limit int) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE user_id = $1 ORDER BY id DESC LIMIT $2`
	return r.list(query, userID, limit)
}

// ListByRecord devuelve la historia completa de un registro, más antigua primero.
func (r *AuditLogRepo) ListByRecord(tableName, recordID string) ([]*entity.AuditEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_log WHERE table_name = $1 AND record_id = $2 ORDER BY id ASC`
	return r.list(query, tableName, recordID)
}

func (r *AuditLogRepo) list(query string, args ...any) ([]*entity.AuditEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanAuditEntry(row pgx.Row) (*entity.AuditEntry, error) {
	var e entity.AuditEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Username, &e.Timestamp, &e.TableName,
		&e.RecordID, &e.Operation, &e.OldValue, &e.NewValue,
		&e.IPAddress, &e.Description,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
