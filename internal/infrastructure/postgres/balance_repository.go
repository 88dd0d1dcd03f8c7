package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de balance. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el balance de un artículo. Devuelve nil, nil si no hay fila
// (stock cero).
func (r *BalanceRepo) Get(itemCode string) (*entity.Balance, error) {
	return r.get(itemCode, false)
}

// GetForUpdate obtiene el balance y bloquea la fila (SELECT FOR UPDATE).
func (r *BalanceRepo) GetForUpdate(itemCode string) (*entity.Balance, error) {
	return r.get(itemCode, true)
}

func (r *BalanceRepo) get(itemCode string, forUpdate bool) (*entity.Balance, error) {
	query := `
		SELECT item_code, quantity, unit, created_at, updated_at
		FROM balance WHERE item_code = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, itemCode).Scan(
		&b.ItemCode, &b.Quantity, &b.Unit, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el balance del artículo.
func (r *BalanceRepo) Upsert(balance *entity.Balance) error {
	query := `
		INSERT INTO balance (item_code, quantity, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (item_code)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit = EXCLUDED.unit, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		balance.ItemCode, balance.Quantity, balance.Unit, balance.CreatedAt, balance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// Delete elimina la fila del balance: la ausencia significa stock cero.
func (r *BalanceRepo) Delete(itemCode string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM balance WHERE item_code = $1`, itemCode)
	if err != nil {
		return fmt.Errorf("delete balance: %w", err)
	}
	return nil
}

// List devuelve todos los balances ordenados por artículo.
func (r *BalanceRepo) List() ([]*entity.Balance, error) {
	query := `
		SELECT item_code, quantity, unit, created_at, updated_at
		FROM balance ORDER BY item_code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var out []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ItemCode, &b.Quantity, &b.Unit, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
