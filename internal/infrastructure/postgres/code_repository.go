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

var _ repository.CodeGroupRepository = (*CodeGroupRepo)(nil)

// CodeGroupRepo implementación de CodeGroupRepository sobre PostgreSQL.
type CodeGroupRepo struct {
	q Querier
}

// NewCodeGroupRepository construye el adaptador de grupos de códigos.
func NewCodeGroupRepository(q Querier) *CodeGroupRepo {
	return &CodeGroupRepo{q: q}
}

const codeGroupColumns = `grp_code, name, description, code_order, is_active, created_at, updated_at`

// Create inserta un grupo. Devuelve ErrDuplicate si el grupo ya existe.
func (r *CodeGroupRepo) Create(group *entity.CodeGroup) error {
	query := `
		INSERT INTO code_groups (` + codeGroupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		group.GrpCode, group.Name, group.Description, group.Order,
		group.IsActive, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: grupo %s", domain.ErrDuplicate, group.GrpCode)
		}
		return fmt.Errorf("create code group: %w", err)
	}
	return nil
}

// GetByCode obtiene un grupo. Devuelve nil, nil si no existe.
func (r *CodeGroupRepo) GetByCode(grpCode string) (*entity.CodeGroup, error) {
	query := `SELECT ` + codeGroupColumns + ` FROM code_groups WHERE grp_code = $1`
	group, err := scanCodeGroup(r.q.QueryRow(context.Background(), query, grpCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get code group: %w", err)
	}
	return group, nil
}

// Update guarda los campos mutables del grupo.
func (r *CodeGroupRepo) Update(group *entity.CodeGroup) error {
	query := `
		UPDATE code_groups
		SET name = $2, description = $3, code_order = $4, is_active = $5, updated_at = $6
		WHERE grp_code = $1`
	tag, err := r.q.Exec(context.Background(), query,
		group.GrpCode, group.Name, group.Description, group.Order,
		group.IsActive, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update code group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: grupo %s", domain.ErrNotFound, group.GrpCode)
	}
	return nil
}

// Delete elimina el grupo. Sus detalles caen por FK en cascada.
func (r *CodeGroupRepo) Delete(grpCode string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM code_groups WHERE grp_code = $1`, grpCode)
	if err != nil {
		return fmt.Errorf("delete code group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: grupo %s", domain.ErrNotFound, grpCode)
	}
	return nil
}

// List devuelve todos los grupos ordenados por code_order y código.
func (r *CodeGroupRepo) List() ([]*entity.CodeGroup, error) {
	query := `SELECT ` + codeGroupColumns + ` FROM code_groups ORDER BY code_order ASC, grp_code ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list code groups: %w", err)
	}
	defer rows.Close()

	var out []*entity.CodeGroup
	for rows.Next() {
		group, err := scanCodeGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan code group: %w", err)
		}
		out = append(out, group)
	}
	return out, rows.Err()
}

func scanCodeGroup(row pgx.Row) (*entity.CodeGroup, error) {
	var g entity.CodeGroup
	err := row.Scan(
		&g.GrpCode, &g.Name, &g.Description, &g.Order, &g.IsActive,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

var _ repository.CodeDetailRepository = (*CodeDetailRepo)(nil)

// CodeDetailRepo implementación de CodeDetailRepository sobre PostgreSQL.
type CodeDetailRepo struct {
	q Querier
}

// NewCodeDetailRepository construye el adaptador de códigos por grupo.
func NewCodeDetailRepository(q Querier) *CodeDetailRepo {
	return &CodeDetailRepo{q: q}
}

const codeDetailColumns = `grp_code, code, name, value, description, code_order, is_active, created_at, updated_at`

// Create inserta un código. Devuelve ErrDuplicate si la clave (grupo, código)
// ya existe.
func (r *CodeDetailRepo) Create(detail *entity.CodeDetail) error {
	query := `
		INSERT INTO code_details (` + codeDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		detail.GrpCode, detail.Code, detail.Name, detail.Value, detail.Description,
		detail.Order, detail.IsActive, detail.CreatedAt, detail.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s/%s", domain.ErrDuplicate, detail.GrpCode, detail.Code)
		}
		return fmt.Errorf("create code detail: %w", err)
	}
	return nil
}

// Get obtiene un código por su clave compuesta. Devuelve nil, nil si no existe.
func (r *CodeDetailRepo) Get(grpCode, code string) (*entity.CodeDetail, error) {
	query := `SELECT ` + codeDetailColumns + ` FROM code_details WHERE grp_code = $1 AND code = $2`
	detail, err := scanCodeDetail(r.q.QueryRow(context.Background(), query, grpCode, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get code detail: %w", err)
	}
	return detail, nil
}

// Update guarda los campos mutables del código.
func (r *CodeDetailRepo) Update(detail *entity.CodeDetail) error {
	query := `
		UPDATE code_details
		SET name = $3, value = $4, description = $5, code_order = $6, is_active = $7, updated_at = $8
		WHERE grp_code = $1 AND code = $2`
	tag, err := r.q.Exec(context.Background(), query,
		detail.GrpCode, detail.Code, detail.Name, detail.Value, detail.Description,
		detail.Order, detail.IsActive, detail.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update code detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: código %s/%s", domain.ErrNotFound, detail.GrpCode, detail.Code)
	}
	return nil
}

// Delete elimina el código.
func (r *CodeDetailRepo) Delete(grpCode, code string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM code_details WHERE grp_code = $1 AND code = $2`, grpCode, code)
	if err != nil {
		return fmt.Errorf("delete code detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: código %s/%s", domain.ErrNotFound, grpCode, code)
	}
	return nil
}

// List devuelve todos los códigos ordenados por grupo y orden.
func (r *CodeDetailRepo) List() ([]*entity.CodeDetail, error) {
	query := `SELECT ` + codeDetailColumns + ` FROM code_details ORDER BY grp_code ASC, code_order ASC, code ASC`
	return r.list(query)
}

// ListByGroup devuelve los códigos de un grupo.
func (r *CodeDetailRepo) ListByGroup(grpCode string) ([]*entity.CodeDetail, error) {
	query := `SELECT ` + codeDetailColumns + ` FROM code_details WHERE grp_code = $1 ORDER BY code_order ASC, code ASC`
	return r.list(query, grpCode)
}

func (r *CodeDetailRepo) list(query string, args ...any) ([]*entity.CodeDetail, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list code details: %w", err)
	}
	defer rows.Close()

	var out []*entity.CodeDetail
	for rows.Next() {
		detail, err := scanCodeDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan code detail: %w", err)
		}
		out = append(out, detail)
	}
	return out, rows.Err()
}

func scanCodeDetail(row pgx.Row) (*entity.CodeDetail, error) {
	var d entity.CodeDetail
	err := row.Scan(
		&d.GrpCode, &d.Code, &d.Name, &d.Value, &d.Description,
		&d.Order, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
