package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRow fila del guardado en lote del maestro de artículos.
type ItemRow struct {
	RowStatus    string           `json:"row_status" validate:"required,oneof=I U D"`
	Code         string           `json:"code"`
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	MaxUsePeriod *int             `json:"max_use_period,omitempty"`
	SafetyStock  *decimal.Decimal `json:"safety_stock,omitempty"`
	Remark       *string          `json:"remark,omitempty"`
	IsAlert      *bool            `json:"is_alert,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// ItemSaveRequest body para POST /api/items/save.
type ItemSaveRequest struct {
	Rows []ItemRow `json:"rows" validate:"required,min=1,dive"`
}

// ItemResponse artículo del maestro.
type ItemResponse struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	MaxUsePeriod *int             `json:"max_use_period,omitempty"`
	SafetyStock  *decimal.Decimal `json:"safety_stock,omitempty"`
	Remark       string           `json:"remark,omitempty"`
	IsAlert      bool             `json:"is_alert"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
