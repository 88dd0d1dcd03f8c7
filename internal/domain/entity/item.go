package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es el dato maestro de artículo (catálogo del almacén).
type Item struct {
	Code         string
	Name         string
	Category     string
	Unit         string
	MaxUsePeriod *int             // días de uso máximo tras preparación/recepción
	SafetyStock  *decimal.Decimal // umbral de reposición; nil = sin control
	Remark       string
	IsAlert      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
