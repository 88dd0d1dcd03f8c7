package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusRow estado de stock por artículo. Parte del maestro, así los artículos
// sin balance también aparecen (con cantidad cero).
type StatusRow struct {
	ItemCode      string
	ItemName      string
	Category      string
	Quantity      decimal.Decimal
	Unit          string
	SafetyStock   *decimal.Decimal
	InboundCount  int
	OutboundCount int
	IsLowStock    bool
	UpdatedAt     *time.Time
}

// StatusFilter filtros del listado de estado de stock.
type StatusFilter struct {
	Category string // igualdad exacta
	ItemCode string // LIKE %code%
	ItemName string // LIKE %name%
}

// LowStockRow artículo en o bajo su stock de seguridad.
type LowStockRow struct {
	ItemCode    string
	ItemName    string
	Category    string
	Quantity    decimal.Decimal
	Unit        string
	SafetyStock decimal.Decimal
	Shortage    decimal.Decimal // SafetyStock - Quantity
}

// ExpiringLotRow lote próximo a caducar.
type ExpiringLotRow struct {
	LotID           string
	ItemCode        string
	ItemName        string
	Category        string
	Quantity        decimal.Decimal
	Unit            string
	ReceivedDate    time.Time
	PreparationDate *time.Time
	MaxUsePeriod    int
	ExpiryDate      time.Time
	DaysUntilExpiry int
}

// StockSummary totales globales del almacén.
type StockSummary struct {
	TotalItems    int
	TotalLots     int
	TotalQuantity decimal.Decimal
	ActiveItems   int
	EmptyItems    int
}

// TransactionRow movimiento reciente (IN y OUT mezclados) para el dashboard.
type TransactionRow struct {
	Direction       string // IN | OUT
	TransactionNo   string // número de lote o id del movimiento
	ItemCode        string
	ItemName        string
	Quantity        decimal.Decimal
	Unit            string
	TransactionDate time.Time
	Remark          string
	CreatedAt       time.Time
}

// ItemHistory detalle de un artículo: stock actual más su historial completo.
type ItemHistory struct {
	ItemCode         string
	ItemName         string
	Category         string
	Quantity         decimal.Decimal
	Unit             string
	SafetyStock      *decimal.Decimal
	InboundCount     int
	TotalInboundQty  decimal.Decimal
	OutboundCount    int
	TotalOutboundQty decimal.Decimal
	IsLowStock       bool
	History          []MovementRow
}

// ReportRepository define las consultas de lectura para estado de stock,
// caducidades y dashboard. Las implementaciones son read-only.
type ReportRepository interface {
	GetStatus(ctx context.Context, filter StatusFilter) ([]StatusRow, error)
	GetLowStock(ctx context.Context, limit int) ([]LowStockRow, error)
	GetExpiringLots(ctx context.Context, withinDays, limit int) ([]ExpiringLotRow, error)
	GetSummary(ctx context.Context) (*StockSummary, error)
	GetRecentTransactions(ctx context.Context, limit int) ([]TransactionRow, error)
	GetItemHistory(ctx context.Context, itemCode string) (*ItemHistory, error)
}
