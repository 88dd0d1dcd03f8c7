package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// StockHandler maneja las consultas de estado de stock (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Balances godoc
// @Summary      Balance real por artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	balances, err := h.uc.GetBalances()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(balances)
}

// Status godoc
// @Summary      Estado de stock por artículo (maestro + balance)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "igualdad exacta"
// @Param        item_code  query  string  false  "LIKE"
// @Param        item_name  query  string  false  "LIKE"
// @Success      200  {array}   dto.StatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/status [get]
func (h *StockHandler) Status(c *fiber.Ctx) error {
	var req dto.StatusSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	status, err := h.uc.GetStatus(c.Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(status)
}

// LowStock godoc
// @Summary      Artículos en o bajo su stock de seguridad
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de filas (50 por defecto)"
// @Success      200  {array}  dto.LowStockResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.uc.GetLowStock(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rows)
}

// Expiring godoc
// @Summary      Lotes próximos a caducar
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        days   query  int  false  "ventana en días (7 por defecto)"
// @Param        limit  query  int  false  "máximo de filas (50 por defecto)"
// @Success      200  {array}  dto.ExpiringLotResponse
// @Router       /api/stock/expiring [get]
func (h *StockHandler) Expiring(c *fiber.Ctx) error {
	rows, err := h.uc.GetExpiringLots(c.Context(), c.QueryInt("days"), c.QueryInt("limit"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rows)
}

// ItemHistory godoc
// @Summary      Stock e historial completo de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de artículo"
// @Success      200  {object}  dto.ItemHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{code} [get]
func (h *StockHandler) ItemHistory(c *fiber.Ctx) error {
	history, err := h.uc.GetItemHistory(c.Context(), c.Params("code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(history)
}
