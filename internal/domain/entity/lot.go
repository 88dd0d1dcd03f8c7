package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote de entrada (recepción física) con su cantidad restante.
// El número de lote tiene formato yyyyMMdd + secuencia de 3 dígitos (ej. 20250110001)
// y es inmutable una vez asignado.
type Lot struct {
	LotID           string
	ItemCode        string
	ReceivedDate    time.Time       // fecha de recepción (normalizada a medianoche)
	PreparationDate *time.Time      // fecha de preparación; determina la caducidad si existe
	Quantity        decimal.Decimal // cantidad restante en el lote; nunca negativa
	Unit            string
	Remark          string
	CreatedAt       time.Time
}
