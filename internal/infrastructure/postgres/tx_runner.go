package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-api/internal/application/inbound"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements inbound.TxRunner and outbound.TxRunner.
var _ inbound.TxRunner = (*TxRunner)(nil)
var _ outbound.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewLotRepository(tx)
	movRepo := NewMovementRepository(tx)
	balanceRepo := NewBalanceRepository(tx)

	if err := fn(lotRepo, movRepo, balanceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
