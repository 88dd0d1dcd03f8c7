package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/inbound"
)

// InboundHandler maneja las peticiones de entradas (protegido).
type InboundHandler struct {
	uc *inbound.UseCase
}

// NewInboundHandler construye el handler.
func NewInboundHandler(uc *inbound.UseCase) *InboundHandler {
	return &InboundHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar entradas en lote (mejor esfuerzo por fila)
// @Description  Cada fila I/U/D corre en su propia transacción; un fallo no
// @Description  detiene las demás. Devuelve un resultado por fila en orden.
// @Tags         inbound
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InboundSaveRequest  true  "filas I/U/D"
// @Success      200   {array}   dto.RowResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inbound/save [post]
func (h *InboundHandler) Save(c *fiber.Ctx) error {
	var in dto.InboundSaveRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	results := h.uc.SaveBatch(c.Context(), in.Rows, actor(c))
	return c.JSON(results)
}

// Search godoc
// @Summary      Buscar lotes de entrada
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Param        item_code   query  string  false  "LIKE"
// @Param        item_name   query  string  false  "LIKE"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inbound [get]
func (h *InboundHandler) Search(c *fiber.Ctx) error {
	var req dto.InboundSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	lots, err := h.uc.Search(req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(lots)
}

// ListByItem godoc
// @Summary      Lotes vivos de un artículo
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de artículo"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inbound/item/{code} [get]
func (h *InboundHandler) ListByItem(c *fiber.Ctx) error {
	lots, err := h.uc.ListByItem(c.Params("code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(lots)
}

// ListByDate godoc
// @Summary      Lotes recibidos en una fecha
// @Tags         inbound
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "yyyy-MM-dd"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inbound/date/{date} [get]
func (h *InboundHandler) ListByDate(c *fiber.Ctx) error {
	lots, err := h.uc.ListByDate(c.Params("date"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(lots)
}
