package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento y asigna el id generado.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (lot_id, item_code, direction, quantity, movement_date, unit, remark, created_at, updated_at)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.LotID, movement.ItemCode, movement.Direction, movement.Quantity,
		movement.MovementDate, movement.Unit, movement.Remark,
		movement.CreatedAt, movement.UpdatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento. Devuelve nil, nil si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `
		SELECT id, COALESCE(lot_id, ''), item_code, direction, quantity, movement_date, unit, remark, created_at, updated_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.LotID, &m.ItemCode, &m.Direction, &m.Quantity,
		&m.MovementDate, &m.Unit, &m.Remark, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// Update guarda los campos mutables del movimiento.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE movements
		SET lot_id = NULLIF($2, ''), item_code = $3, quantity = $4,
		    movement_date = $5, unit = $6, remark = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.LotID, movement.ItemCode, movement.Quantity,
		movement.MovementDate, movement.Unit, movement.Remark, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %d", domain.ErrMovementNotFound, movement.ID)
	}
	return nil
}

// Delete elimina el movimiento.
func (r *MovementRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %d", domain.ErrMovementNotFound, id)
	}
	return nil
}

// List devuelve el historial enriquecido con lote y maestro según el filtro.
// Las entradas muestran las fechas del lote para calcular caducidad.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]repository.MovementRow, error) {
	query := `
		SELECT m.id, COALESCE(m.lot_id, ''), m.item_code, COALESCE(i.name, ''),
		       m.direction, m.quantity, m.unit, m.movement_date,
		       l.received_date, l.preparation_date, i.max_use_period,
		       CASE WHEN i.max_use_period IS NOT NULL AND l.lot_id IS NOT NULL
		            THEN COALESCE(l.preparation_date, l.received_date) + i.max_use_period
		       END AS expiry_date,
		       m.remark, m.created_at
		FROM movements m
		LEFT JOIN lots l ON l.lot_id = m.lot_id
		LEFT JOIN items i ON i.code = m.item_code
		WHERE ($1::date IS NULL OR m.movement_date >= $1)
		  AND ($2::date IS NULL OR m.movement_date <= $2)
		  AND ($3 = '' OR m.direction = $3)
		  AND ($4 = '' OR m.item_code ILIKE '%' || $4 || '%')
		  AND ($5 = '' OR i.name ILIKE '%' || $5 || '%')
		  AND ($6 = '' OR m.lot_id = $6)
		ORDER BY m.movement_date DESC, m.id DESC`
	rows, err := r.q.Query(context.Background(), query,
		filter.StartDate, filter.EndDate, filter.Direction,
		filter.ItemCode, filter.ItemName, filter.LotID,
	)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementRow
	for rows.Next() {
		var mr repository.MovementRow
		if err := rows.Scan(
			&mr.ID, &mr.LotID, &mr.ItemCode, &mr.ItemName,
			&mr.Direction, &mr.Quantity, &mr.Unit, &mr.MovementDate,
			&mr.ReceivedDate, &mr.PreparationDate, &mr.MaxUsePeriod,
			&mr.ExpiryDate, &mr.Remark, &mr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement row: %w", err)
		}
		out = append(out, mr)
	}
	return out, rows.Err()
}
