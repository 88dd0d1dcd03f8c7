package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// MenuHandler maneja el menú jerárquico. El árbol es para cualquier usuario
// autenticado; el mantenimiento es solo admin.
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Tree godoc
// @Summary      Árbol de menús visibles para el rol del token
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MenuNode
// @Router       /api/menus/tree [get]
func (h *MenuHandler) Tree(c *fiber.Ctx) error {
	tree, err := h.uc.GetTree(GetRole(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(tree)
}

// List godoc
// @Summary      Listar todos los menús (solo admin)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Menu
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	menus, err := h.uc.List()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(menus)
}

// Create godoc
// @Summary      Crear un menú (solo admin)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "name, path, icon, parent_id, order, roles"
// @Success      201   {object}  entity.Menu
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	menu, err := h.uc.Create(in, actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(menu)
}

// Update godoc
// @Summary      Modificar un menú (solo admin)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "id del menú"
// @Param        body  body  dto.UpdateMenuRequest  true  "campos a modificar"
// @Success      200   {object}  entity.Menu
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	menu, err := h.uc.Update(c.Params("id"), in, actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(menu)
}

// Delete godoc
// @Summary      Eliminar un menú (solo admin)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "id del menú"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), actor(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"message": "menú eliminado"})
}
