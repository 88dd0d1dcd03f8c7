package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento en el historial de stock.
const (
	DirectionIN  = "IN"  // entrada (creación de lote)
	DirectionOUT = "OUT" // salida (consumo contra un lote)
)

// Movement representa una entrada del historial de entradas/salidas.
// Cada creación de lote produce exactamente un movimiento IN; cada salida
// produce exactamente un movimiento OUT. Las filas OUT se editan/eliminan en
// el sitio al modificar o anular la salida (historial mutable para OUT).
type Movement struct {
	ID           int64
	LotID        string // vacío para ajustes puros sin lote
	ItemCode     string
	Direction    string          // IN | OUT
	Quantity     decimal.Decimal // siempre positiva; la dirección da el signo lógico
	MovementDate time.Time
	Unit         string
	Remark       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
