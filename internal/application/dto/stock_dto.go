package dto

import "github.com/shopspring/decimal"

// BalanceResponse stock actual por artículo (proyección real).
type BalanceResponse struct {
	ItemCode string          `json:"item_code"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// StatusResponse fila de estado de stock (maestro + balance + contadores).
type StatusResponse struct {
	ItemCode      string           `json:"item_code"`
	ItemName      string           `json:"item_name"`
	Category      string           `json:"category"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Unit          string           `json:"unit"`
	SafetyStock   *decimal.Decimal `json:"safety_stock,omitempty"`
	InboundCount  int              `json:"inbound_count"`
	OutboundCount int              `json:"outbound_count"`
	IsLowStock    bool             `json:"is_low_stock"`
}

// StatusSearchRequest filtros del listado de estado de stock.
type StatusSearchRequest struct {
	Category string `query:"category"`
	ItemCode string `query:"item_code"`
	ItemName string `query:"item_name"`
}

// LowStockResponse artículo bajo su stock de seguridad.
type LowStockResponse struct {
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	Shortage    decimal.Decimal `json:"shortage"`
}

// ItemHistoryResponse detalle de un artículo con su historial completo.
type ItemHistoryResponse struct {
	StockInfo *ItemStockInfo     `json:"stock_info"`
	History   []MovementResponse `json:"history"`
}

// ItemStockInfo resumen de stock de un artículo.
type ItemStockInfo struct {
	ItemCode         string           `json:"item_code"`
	ItemName         string           `json:"item_name"`
	Category         string           `json:"category"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Unit             string           `json:"unit"`
	SafetyStock      *decimal.Decimal `json:"safety_stock,omitempty"`
	InboundCount     int              `json:"inbound_count"`
	TotalInboundQty  decimal.Decimal  `json:"total_inbound_quantity"`
	OutboundCount    int              `json:"outbound_count"`
	TotalOutboundQty decimal.Decimal  `json:"total_outbound_quantity"`
	IsLowStock       bool             `json:"is_low_stock"`
}

// DashboardResponse datos agregados del panel principal.
type DashboardResponse struct {
	LowStock           []LowStockResponse    `json:"low_stock"`
	Expiring           []ExpiringLotResponse `json:"expiring"`
	Summary            *SummaryResponse      `json:"summary"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// ExpiringLotResponse lote próximo a caducar.
type ExpiringLotResponse struct {
	LotID           string          `json:"lot_id"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Category        string          `json:"category"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	ReceivedDate    string          `json:"received_date"`
	PreparationDate *string         `json:"preparation_date,omitempty"`
	ExpiryDate      string          `json:"expiry_date"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
}

// SummaryResponse totales globales del almacén.
type SummaryResponse struct {
	TotalItems    int             `json:"total_items"`
	TotalLots     int             `json:"total_lots"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	ActiveItems   int             `json:"active_items"`
	EmptyItems    int             `json:"empty_items"`
}

// TransactionResponse movimiento reciente para el dashboard.
type TransactionResponse struct {
	Direction       string          `json:"io_type"`
	TransactionNo   string          `json:"transaction_no"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	TransactionDate string          `json:"transaction_date"`
	Remark          string          `json:"remark,omitempty"`
}
