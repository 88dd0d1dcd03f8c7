package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// BalanceRepository define el puerto para la proyección de stock por artículo.
// Solo los servicios de entrada/salida mutan el balance, siempre dentro de su
// transacción; ningún otro componente escribe aquí.
type BalanceRepository interface {
	// Get devuelve nil, nil si no existe fila (stock cero).
	Get(itemCode string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila del balance (SELECT FOR UPDATE).
	GetForUpdate(itemCode string) (*entity.Balance, error)
	Upsert(balance *entity.Balance) error
	Delete(itemCode string) error
	List() ([]*entity.Balance, error)
}
