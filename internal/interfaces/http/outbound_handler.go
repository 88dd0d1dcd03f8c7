package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
)

// OutboundHandler maneja las peticiones de salidas e historial (protegido).
type OutboundHandler struct {
	uc *outbound.UseCase
}

// NewOutboundHandler construye el handler.
func NewOutboundHandler(uc *outbound.UseCase) *OutboundHandler {
	return &OutboundHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar salidas en lote (atómico)
// @Description  Todas las filas I/U/D se aplican en una sola transacción:
// @Description  la primera fila que falla revierte el lote completo.
// @Tags         outbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OutboundSaveRequest  true  "filas I/U/D"
// @Success      200   {array}   dto.RowResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/outbound/save [post]
func (h *OutboundHandler) Save(c *fiber.Ctx) error {
	var in dto.OutboundSaveRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	results, err := h.uc.SaveBatch(c.Context(), in.Rows, actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(results)
}

// List godoc
// @Summary      Buscar salidas
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Param        item_code   query  string  false  "LIKE"
// @Param        item_name   query  string  false  "LIKE"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/outbound [get]
func (h *OutboundHandler) List(c *fiber.Ctx) error {
	var req dto.MovementSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movements, err := h.uc.ListOutbound(req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(movements)
}

// History godoc
// @Summary      Historial de movimientos (IN y OUT)
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Param        io_type     query  string  false  "IN | OUT; vacío = ambos"
// @Param        item_code   query  string  false  "LIKE"
// @Param        item_name   query  string  false  "LIKE"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *OutboundHandler) History(c *fiber.Ctx) error {
	var req dto.MovementSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movements, err := h.uc.Search(req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(movements)
}

// ListByLot godoc
// @Summary      Movimientos de un lote
// @Tags         outbound
// @Security     Bearer
// @Produce      json
// @Param        lot_id  path  string  true  "número de lote"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/lot/{lot_id} [get]
func (h *OutboundHandler) ListByLot(c *fiber.Ctx) error {
	movements, err := h.uc.ListByLot(c.Params("lot_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(movements)
}
