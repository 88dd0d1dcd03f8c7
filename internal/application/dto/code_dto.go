package dto

import "time"

// CodeGroupRow fila del guardado en lote de grupos de códigos.
type CodeGroupRow struct {
	RowStatus   string  `json:"row_status" validate:"required,oneof=I U D"`
	GrpCode     string  `json:"grp_code"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CodeGroupSaveRequest body para POST /api/codes/groups/save.
type CodeGroupSaveRequest struct {
	Rows []CodeGroupRow `json:"rows" validate:"required,min=1,dive"`
}

// CodeGroupResponse grupo de códigos comunes.
type CodeGroupResponse struct {
	GrpCode     string    `json:"grp_code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CodeDetailRow fila del guardado en lote de códigos por grupo.
type CodeDetailRow struct {
	RowStatus   string  `json:"row_status" validate:"required,oneof=I U D"`
	GrpCode     string  `json:"grp_code"`
	Code        string  `json:"code"`
	Name        *string `json:"name,omitempty"`
	Value       *string `json:"value,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CodeDetailSaveRequest body para POST /api/codes/details/save.
type CodeDetailSaveRequest struct {
	Rows []CodeDetailRow `json:"rows" validate:"required,min=1,dive"`
}

// CodeDetailResponse código común dentro de un grupo.
type CodeDetailResponse struct {
	GrpCode     string    `json:"grp_code"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Value       string    `json:"value,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
