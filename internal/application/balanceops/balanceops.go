// Package balanceops contiene las dos únicas mutaciones permitidas sobre la
// proyección de balance. Solo los servicios de entrada y salida las invocan,
// siempre dentro de su transacción.
package balanceops

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Increment suma qty al balance del artículo, creando la fila si no existe.
// La unidad se sobrescribe con la del movimiento más reciente.
func Increment(repo repository.BalanceRepository, itemCode string, qty decimal.Decimal, unit string, now time.Time) error {
	balance, err := repo.GetForUpdate(itemCode)
	if err != nil {
		return err
	}
	if balance == nil {
		balance = &entity.Balance{
			ItemCode:  itemCode,
			Quantity:  decimal.Zero,
			CreatedAt: now,
		}
	}
	balance.Quantity = balance.Quantity.Add(qty)
	if unit != "" {
		balance.Unit = unit
	}
	balance.UpdatedAt = now
	return repo.Upsert(balance)
}

// Decrement resta qty del balance del artículo. Si el resultado queda en cero
// o menos la fila se elimina: la ausencia de fila significa stock cero.
func Decrement(repo repository.BalanceRepository, itemCode string, qty decimal.Decimal, now time.Time) error {
	balance, err := repo.GetForUpdate(itemCode)
	if err != nil {
		return err
	}
	if balance == nil {
		// Sin fila no hay nada que restar; el balance ya es cero.
		return nil
	}
	balance.Quantity = balance.Quantity.Sub(qty)
	if balance.Quantity.LessThanOrEqual(decimal.Zero) {
		return repo.Delete(itemCode)
	}
	balance.UpdatedAt = now
	return repo.Upsert(balance)
}
