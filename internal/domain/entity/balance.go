package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance es la proyección de stock actual por artículo, mantenida de forma
// incremental por los servicios de entrada/salida. La ausencia de fila
// significa cero, no desconocido: la fila se elimina cuando la cantidad
// llega a cero o menos.
//
// Invariante en reposo: Balance.Quantity == Σ Lot.Quantity del artículo.
type Balance struct {
	ItemCode  string
	Quantity  decimal.Decimal
	Unit      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
