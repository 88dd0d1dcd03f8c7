package inbound

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Commit si fn devuelve nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
