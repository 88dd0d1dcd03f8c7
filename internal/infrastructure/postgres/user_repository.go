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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, password_hash, name, email, role, status, approved_by, approved_at, created_at, updated_at`

// Create inserta un usuario. Devuelve ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.PasswordHash, user.Name, user.Email,
		user.Role, user.Status, user.ApprovedBy, user.ApprovedAt,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %s", domain.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy("id", id)
}

// GetByUsername obtiene un usuario por nombre. Devuelve nil, nil si no existe.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getBy("username", username)
}

func (r *UserRepo) getBy(column, value string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`
	user, err := scanUser(r.q.QueryRow(context.Background(), query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update guarda los campos mutables del usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, password_hash = $3, name = $4, email = $5,
		    role = $6, status = $7, approved_by = $8, approved_at = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.PasswordHash, user.Name, user.Email,
		user.Role, user.Status, user.ApprovedBy, user.ApprovedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: usuario %s", domain.ErrUserNotFound, user.ID)
	}
	return nil
}

// List devuelve todos los usuarios, más recientes primero.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.list(query)
}

// ListByStatus devuelve los usuarios con un estado concreto.
func (r *UserRepo) ListByStatus(status string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY created_at DESC`
	return r.list(query, status)
}

func (r *UserRepo) list(query string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email,
		&u.Role, &u.Status, &u.ApprovedBy, &u.ApprovedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
