package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler exportación a Excel del estado de stock y del historial.
type ExportHandler struct {
	stockUC    *usecase.StockUseCase
	outboundUC *outbound.UseCase
	exporter   *excel.Exporter
}

// NewExportHandler construye el handler.
func NewExportHandler(stockUC *usecase.StockUseCase, outboundUC *outbound.UseCase, exporter *excel.Exporter) *ExportHandler {
	return &ExportHandler{stockUC: stockUC, outboundUC: outboundUC, exporter: exporter}
}

// Status godoc
// @Summary      Exportar el estado de stock a xlsx
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        category   query  string  false  "igualdad exacta"
// @Param        item_code  query  string  false  "LIKE"
// @Param        item_name  query  string  false  "LIKE"
// @Success      200  {file}  binary
// @Router       /api/export/status [get]
func (h *ExportHandler) Status(c *fiber.Ctx) error {
	var req dto.StatusSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	rows, err := h.stockUC.GetStatus(c.Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	buf, err := h.exporter.ExportStatus(rows)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_status.xlsx"`)
	return c.Send(buf.Bytes())
}

// Movements godoc
// @Summary      Exportar el historial de movimientos a xlsx
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start_date  query  string  false  "yyyy-MM-dd"
// @Param        end_date    query  string  false  "yyyy-MM-dd"
// @Param        io_type     query  string  false  "IN | OUT; vacío = ambos"
// @Param        item_code   query  string  false  "LIKE"
// @Param        item_name   query  string  false  "LIKE"
// @Success      200  {file}  binary
// @Router       /api/export/movements [get]
func (h *ExportHandler) Movements(c *fiber.Ctx) error {
	var req dto.MovementSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	rows, err := h.outboundUC.Search(req)
	if err != nil {
		return handleError(c, err)
	}
	buf, err := h.exporter.ExportMovements(rows)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movements.xlsx"`)
	return c.Send(buf.Bytes())
}
