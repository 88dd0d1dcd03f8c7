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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador del maestro de artículos.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `code, name, category, unit, max_use_period, safety_stock, remark, is_alert, is_active, created_at, updated_at`

// Create inserta un artículo. Devuelve ErrDuplicate si el código ya existe.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.Code, item.Name, item.Category, item.Unit, item.MaxUsePeriod,
		item.SafetyStock, item.Remark, item.IsAlert, item.IsActive,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: artículo %s", domain.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByCode obtiene un artículo. Devuelve nil, nil si no existe.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Update guarda los campos mutables del artículo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, unit = $4, max_use_period = $5,
		    safety_stock = $6, remark = $7, is_alert = $8, is_active = $9, updated_at = $10
		WHERE code = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.Code, item.Name, item.Category, item.Unit, item.MaxUsePeriod,
		item.SafetyStock, item.Remark, item.IsAlert, item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, item.Code)
	}
	return nil
}

// Delete elimina el artículo del maestro.
func (r *ItemRepo) Delete(code string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, code)
	}
	return nil
}

// List devuelve el maestro completo ordenado por código.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY code`
	return r.list(query)
}

// ListByCategory devuelve los artículos de una categoría.
func (r *ItemRepo) ListByCategory(category string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category = $1 ORDER BY code`
	return r.list(query, category)
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.Code, &i.Name, &i.Category, &i.Unit, &i.MaxUsePeriod,
		&i.SafetyStock, &i.Remark, &i.IsAlert, &i.IsActive,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
