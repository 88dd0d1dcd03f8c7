package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutboundRow fila del guardado en lote de salidas. Insert consume contra un
// lote; Update puede reapuntar la salida a otro lote; Delete revierte el efecto.
type OutboundRow struct {
	RowStatus string           `json:"row_status" validate:"required,oneof=I U D"`
	ID        *int64           `json:"id,omitempty"` // requerido en U y D
	LotID     string           `json:"lot_id,omitempty"`
	ItemCode  string           `json:"item_code,omitempty"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Unit      string           `json:"unit,omitempty"`
	IODate    string           `json:"io_date,omitempty"` // yyyy-MM-dd
	Remark    string           `json:"remark,omitempty"`
}

// OutboundSaveRequest body para POST /api/outbound/save. El lote completo se
// aplica en una sola transacción: cualquier fila fallida revierte todo.
type OutboundSaveRequest struct {
	Rows []OutboundRow `json:"rows" validate:"required,min=1,dive"`
}

// MovementSearchRequest filtros de búsqueda del historial de movimientos.
type MovementSearchRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Direction string `query:"io_type" validate:"omitempty,oneof=IN OUT"`
	ItemCode  string `query:"item_code"`
	ItemName  string `query:"item_name"`
}

// MovementResponse fila del historial enriquecida para listados.
type MovementResponse struct {
	ID              int64           `json:"id"`
	LotID           string          `json:"lot_id,omitempty"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name,omitempty"`
	Direction       string          `json:"io_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	IODate          string          `json:"io_date"`
	ReceivedDate    *string         `json:"received_date,omitempty"`
	PreparationDate *string         `json:"preparation_date,omitempty"`
	ExpiryDate      *string         `json:"expiry_date,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
