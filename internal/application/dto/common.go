package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RowResult resultado por fila de un guardado en lote. En éxito Data lleva el
// registro resultante; en fallo Data queda vacío y Message lleva la causa.
type RowResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Estados de fila del protocolo de guardado en lote (I/U/D).
const (
	RowInsert = "I"
	RowUpdate = "U"
	RowDelete = "D"
)
