package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// MovementFilter condiciones de búsqueda para el historial de movimientos.
type MovementFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Direction string // IN | OUT | vacío = ambos
	ItemCode  string // LIKE %code%
	ItemName  string // LIKE %name%
	LotID     string
}

// MovementRow es una fila del historial enriquecida con el lote y el maestro.
type MovementRow struct {
	ID              int64
	LotID           string
	ItemCode        string
	ItemName        string
	Direction       string
	Quantity        decimal.Decimal
	Unit            string
	MovementDate    time.Time
	ReceivedDate    *time.Time
	PreparationDate *time.Time
	MaxUsePeriod    *int
	ExpiryDate      *time.Time
	Remark          string
	CreatedAt       time.Time
}

// MovementRepository define el puerto de persistencia para el historial IN/OUT.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// GetByID devuelve nil, nil si el movimiento no existe.
	GetByID(id int64) (*entity.Movement, error)
	Update(movement *entity.Movement) error
	Delete(id int64) error
	List(filter MovementFilter) ([]MovementRow, error)
}
