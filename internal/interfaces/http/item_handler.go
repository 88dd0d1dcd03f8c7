package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// ItemHandler maneja el maestro de artículos (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar artículos en lote (mejor esfuerzo por fila)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemSaveRequest  true  "filas I/U/D"
// @Success      200   {array}   dto.RowResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/save [post]
func (h *ItemHandler) Save(c *fiber.Ctx) error {
	var in dto.ItemSaveRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	results := h.uc.SaveBatch(in.Rows, actor(c))
	return c.JSON(results)
}

// List godoc
// @Summary      Listar el maestro de artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "filtrar por categoría"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Query("category"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(items)
}

// GetByCode godoc
// @Summary      Obtener un artículo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "código de artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{code} [get]
func (h *ItemHandler) GetByCode(c *fiber.Ctx) error {
	item, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(item)
}
