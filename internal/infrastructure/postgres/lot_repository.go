package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// lotListSelect columnas del listado enriquecido con el maestro. El artículo
// puede no existir ya en el maestro; el LEFT JOIN conserva el lote.
const lotListSelect = `
	SELECT l.lot_id, l.item_code, COALESCE(i.name, ''), l.received_date,
	       l.preparation_date, l.quantity, l.unit, i.max_use_period,
	       CASE WHEN i.max_use_period IS NOT NULL
	            THEN COALESCE(l.preparation_date, l.received_date) + i.max_use_period
	       END AS expiry_date,
	       l.remark, l.created_at
	FROM lots l
	LEFT JOIN items i ON i.code = l.item_code`

// Create inserta un lote nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (lot_id, item_code, received_date, preparation_date, quantity, unit, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.LotID, lot.ItemCode, lot.ReceivedDate, lot.PreparationDate,
		lot.Quantity, lot.Unit, lot.Remark, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, lot.LotID)
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por su número. Devuelve nil, nil si no existe.
func (r *LotRepo) GetByID(lotID string) (*entity.Lot, error) {
	return r.get(lotID, false)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *LotRepo) GetForUpdate(lotID string) (*entity.Lot, error) {
	return r.get(lotID, true)
}

func (r *LotRepo) get(lotID string, forUpdate bool) (*entity.Lot, error) {
	query := `
		SELECT lot_id, item_code, received_date, preparation_date, quantity, unit, remark, created_at
		FROM lots WHERE lot_id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, lotID).Scan(
		&l.LotID, &l.ItemCode, &l.ReceivedDate, &l.PreparationDate,
		&l.Quantity, &l.Unit, &l.Remark, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// Update guarda los campos mutables del lote.
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots
		SET item_code = $2, received_date = $3, preparation_date = $4,
		    quantity = $5, unit = $6, remark = $7
		WHERE lot_id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lot.LotID, lot.ItemCode, lot.ReceivedDate, lot.PreparationDate,
		lot.Quantity, lot.Unit, lot.Remark,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, lot.LotID)
	}
	return nil
}

// Delete elimina el lote. Los movimientos referencian el número sin FK dura,
// así el historial sobrevive a la baja.
func (r *LotRepo) Delete(lotID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM lots WHERE lot_id = $1`, lotID)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrLotNotFound, lotID)
	}
	return nil
}

// LockSequence toma un advisory lock transaccional sobre el prefijo de fecha
// para serializar la numeración de lotes de ese día.
func (r *LotRepo) LockSequence(prefix string) error {
	_, err := r.q.Exec(context.Background(), `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix)
	if err != nil {
		return fmt.Errorf("lock lot sequence: %w", err)
	}
	return nil
}

// LastIDWithPrefix devuelve el número de lote más alto del prefijo, o "" si
// todavía no hay lotes ese día.
func (r *LotRepo) LastIDWithPrefix(prefix string) (string, error) {
	query := `SELECT lot_id FROM lots WHERE lot_id LIKE $1 || '%' ORDER BY lot_id DESC LIMIT 1`
	var lotID string
	err := r.q.QueryRow(context.Background(), query, prefix).Scan(&lotID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last lot id: %w", err)
	}
	return lotID, nil
}

// List devuelve lotes enriquecidos con el maestro según el filtro.
func (r *LotRepo) List(filter repository.LotFilter) ([]repository.LotRow, error) {
	query := lotListSelect + `
	WHERE ($1::date IS NULL OR l.received_date >= $1)
	  AND ($2::date IS NULL OR l.received_date <= $2)
	  AND ($3 = '' OR l.item_code ILIKE '%' || $3 || '%')
	  AND ($4 = '' OR i.name ILIKE '%' || $4 || '%')
	ORDER BY l.lot_id DESC`
	rows, err := r.q.Query(context.Background(), query,
		filter.StartDate, filter.EndDate, filter.ItemCode, filter.ItemName)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	return scanLotRows(rows)
}

// ListByItem devuelve los lotes vivos de un artículo, más antiguos primero.
func (r *LotRepo) ListByItem(itemCode string) ([]repository.LotRow, error) {
	query := lotListSelect + `
	WHERE l.item_code = $1
	ORDER BY l.lot_id ASC`
	rows, err := r.q.Query(context.Background(), query, itemCode)
	if err != nil {
		return nil, fmt.Errorf("list lots by item: %w", err)
	}
	defer rows.Close()
	return scanLotRows(rows)
}

// ListByDate devuelve los lotes recibidos en una fecha concreta.
func (r *LotRepo) ListByDate(date time.Time) ([]repository.LotRow, error) {
	query := lotListSelect + `
	WHERE l.received_date = $1
	ORDER BY l.lot_id ASC`
	rows, err := r.q.Query(context.Background(), query, date)
	if err != nil {
		return nil, fmt.Errorf("list lots by date: %w", err)
	}
	defer rows.Close()
	return scanLotRows(rows)
}

func scanLotRows(rows pgx.Rows) ([]repository.LotRow, error) {
	var out []repository.LotRow
	for rows.Next() {
		var lr repository.LotRow
		if err := rows.Scan(
			&lr.LotID, &lr.ItemCode, &lr.ItemName, &lr.ReceivedDate,
			&lr.PreparationDate, &lr.Quantity, &lr.Unit, &lr.MaxUsePeriod,
			&lr.ExpiryDate, &lr.Remark, &lr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lot row: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}
