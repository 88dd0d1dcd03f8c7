package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// AuditHandler consultas del log de auditoría (solo admin).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar entradas del log de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table    query  string  false  "filtrar por tabla"
// @Param        user_id  query  string  false  "filtrar por usuario"
// @Param        limit    query  int     false  "máximo de filas (100 por defecto)"
// @Success      200  {array}  entity.AuditEntry
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.uc.List(c.Query("table"), c.Query("user_id"), c.QueryInt("limit"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(entries)
}

// ListByRecord godoc
// @Summary      Historia de auditoría de un registro
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table      path  string  true  "tabla"
// @Param        record_id  path  string  true  "id del registro"
// @Success      200  {array}   entity.AuditEntry
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/{table}/{record_id} [get]
func (h *AuditHandler) ListByRecord(c *fiber.Ctx) error {
	entries, err := h.uc.ListByRecord(c.Params("table"), c.Params("record_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(entries)
}
