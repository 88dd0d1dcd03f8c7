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

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementación de MenuRepository sobre PostgreSQL. Roles se guarda
// como text[] nativo.
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador de menús.
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// Create inserta un menú.
func (r *MenuRepo) Create(menu *entity.Menu) error {
	query := `
		INSERT INTO menus (id, name, path, icon, parent_id, menu_order, is_active, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		menu.ID, menu.Name, menu.Path, menu.Icon, menu.ParentID,
		menu.Order, menu.IsActive, menu.Roles, menu.CreatedAt, menu.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}

// GetByID obtiene un menú. Devuelve nil, nil si no existe.
func (r *MenuRepo) GetByID(id string) (*entity.Menu, error) {
	query := `
		SELECT id, name, path, icon, COALESCE(parent_id, ''), menu_order, is_active, roles, created_at, updated_at
		FROM menus WHERE id = $1`
	var m entity.Menu
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Path, &m.Icon, &m.ParentID,
		&m.Order, &m.IsActive, &m.Roles, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return &m, nil
}

// Update guarda los campos mutables del menú.
func (r *MenuRepo) Update(menu *entity.Menu) error {
	query := `
		UPDATE menus
		SET name = $2, path = $3, icon = $4, parent_id = NULLIF($5, ''),
		    menu_order = $6, is_active = $7, roles = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		menu.ID, menu.Name, menu.Path, menu.Icon, menu.ParentID,
		menu.Order, menu.IsActive, menu.Roles, menu.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: menú %s", domain.ErrNotFound, menu.ID)
	}
	return nil
}

// Delete elimina el menú. Los hijos quedan con parent_id huérfano y se
// degradan a raíz al construir el árbol.
func (r *MenuRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: menú %s", domain.ErrNotFound, id)
	}
	return nil
}

// List devuelve todos los menús ordenados por menu_order.
func (r *MenuRepo) List() ([]*entity.Menu, error) {
	query := `
		SELECT id, name, path, icon, COALESCE(parent_id, ''), menu_order, is_active, roles, created_at, updated_at
		FROM menus ORDER BY menu_order ASC, name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var out []*entity.Menu
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Path, &m.Icon, &m.ParentID,
			&m.Order, &m.IsActive, &m.Roles, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
