package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// LotFilter condiciones de búsqueda para lotes (rangos y LIKE).
type LotFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ItemCode  string // LIKE %code%
	ItemName  string // LIKE %name%
}

// LotRow es una fila de lote enriquecida con el maestro de artículos para listados.
type LotRow struct {
	LotID           string
	ItemCode        string
	ItemName        string
	ReceivedDate    time.Time
	PreparationDate *time.Time
	Quantity        decimal.Decimal
	Unit            string
	MaxUsePeriod    *int
	ExpiryDate      *time.Time
	Remark          string
	CreatedAt       time.Time
}

// LotRepository define el puerto de persistencia para lotes de entrada.
// Los métodos de mutación se usan dentro de transacciones (Querier atado a tx).
type LotRepository interface {
	Create(lot *entity.Lot) error
	// GetByID devuelve nil, nil si el lote no existe.
	GetByID(lotID string) (*entity.Lot, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE).
	GetForUpdate(lotID string) (*entity.Lot, error)
	Update(lot *entity.Lot) error
	Delete(lotID string) error
	// LockSequence serializa la numeración de lotes del prefijo de fecha dado
	// frente a inserciones concurrentes. El lock vive hasta el fin de la
	// transacción en curso.
	LockSequence(prefix string) error
	// LastIDWithPrefix devuelve el número de lote más alto con el prefijo de
	// fecha dado, o "" si no hay ninguno. Llamar con el lock de secuencia tomado.
	LastIDWithPrefix(prefix string) (string, error)
	List(filter LotFilter) ([]LotRow, error)
	ListByItem(itemCode string) ([]LotRow, error)
	ListByDate(date time.Time) ([]LotRow, error)
}
