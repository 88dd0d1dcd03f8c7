package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InboundRow fila del guardado en lote de entradas. RowStatus discrimina la
// operación; los campos opcionales van como punteros para distinguir "omitido"
// de "vacío" en las actualizaciones parciales.
type InboundRow struct {
	RowStatus       string           `json:"row_status" validate:"required,oneof=I U D"`
	LotID           string           `json:"lot_id,omitempty"`
	ItemCode        *string          `json:"item_code,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Unit            *string          `json:"unit,omitempty"`
	ReceivedDate    *string          `json:"received_date,omitempty"`    // yyyy-MM-dd
	PreparationDate *string          `json:"preparation_date,omitempty"` // yyyy-MM-dd
	Remark          *string          `json:"remark,omitempty"`
}

// InboundSaveRequest body para POST /api/inbound/save.
type InboundSaveRequest struct {
	Rows []InboundRow `json:"rows" validate:"required,min=1,dive"`
}

// InboundSearchRequest filtros de búsqueda de entradas.
type InboundSearchRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	ItemCode  string `query:"item_code"`
	ItemName  string `query:"item_name"`
}

// LotResponse lote enriquecido con el maestro para listados.
type LotResponse struct {
	LotID           string          `json:"lot_id"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name,omitempty"`
	ReceivedDate    string          `json:"received_date"`
	PreparationDate *string         `json:"preparation_date,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	MaxUsePeriod    *int            `json:"max_use_period,omitempty"`
	ExpiryDate      *string         `json:"expiry_date,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
