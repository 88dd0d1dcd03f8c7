package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// CodeHandler maneja los códigos comunes: grupos y detalles (protegido).
type CodeHandler struct {
	uc *usecase.CodeUseCase
}

// NewCodeHandler construye el handler.
func NewCodeHandler(uc *usecase.CodeUseCase) *CodeHandler {
	return &CodeHandler{uc: uc}
}

// SaveGroups godoc
// @Summary      Guardar grupos de códigos en lote (mejor esfuerzo por fila)
// @Tags         codes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CodeGroupSaveRequest  true  "filas I/U/D"
// @Success      200   {array}   dto.RowResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/codes/groups/save [post]
func (h *CodeHandler) SaveGroups(c *fiber.Ctx) error {
	var in dto.CodeGroupSaveRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	results := h.uc.SaveGroups(in.Rows, actor(c))
	return c.JSON(results)
}

// ListGroups godoc
// @Summary      Listar grupos de códigos
// @Tags         codes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CodeGroupResponse
// @Router       /api/codes/groups [get]
func (h *CodeHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.uc.ListGroups()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(groups)
}

// GetGroup godoc
// @Summary      Obtener un grupo de códigos
// @Tags         codes
// @Security     Bearer
// @Produce      json
// @Param        grp_code  path  string  true  "código de grupo"
// @Success      200  {object}  dto.CodeGroupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/codes/groups/{grp_code} [get]
func (h *CodeHandler) GetGroup(c *fiber.Ctx) error {
	group, err := h.uc.GetGroup(c.Params("grp_code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(group)
}

// SaveDetails godoc
// @Summary      Guardar códigos en lote (mejor esfuerzo por fila)
// @Tags         codes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CodeDetailSaveRequest  true  "filas I/U/D"
// @Success      200   {array}   dto.RowResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/codes/details/save [post]
func (h *CodeHandler) SaveDetails(c *fiber.Ctx) error {
	var in dto.CodeDetailSaveRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	results := h.uc.SaveDetails(in.Rows, actor(c))
	return c.JSON(results)
}

// ListDetails godoc
// @Summary      Listar códigos comunes
// @Tags         codes
// @Security     Bearer
// @Produce      json
// @Param        grp_code  query  string  false  "filtrar por grupo"
// @Success      200  {array}  dto.CodeDetailResponse
// @Router       /api/codes/details [get]
func (h *CodeHandler) ListDetails(c *fiber.Ctx) error {
	details, err := h.uc.ListDetails(c.Query("grp_code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(details)
}

// ListDetailsByGroup godoc
// @Summary      Listar los códigos de un grupo
// @Tags         codes
// @Security     Bearer
// @Produce      json
// @Param        grp_code  path  string  true  "código de grupo"
// @Success      200  {array}  dto.CodeDetailResponse
// @Router       /api/codes/details/{grp_code} [get]
func (h *CodeHandler) ListDetailsByGroup(c *fiber.Ctx) error {
	details, err := h.uc.ListDetails(c.Params("grp_code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(details)
}

// GetDetail godoc
// @Summary      Obtener un código por grupo y código
// @Tags         codes
// @Security     Bearer
// @Produce      json
// @Param        grp_code  path  string  true  "código de grupo"
// @Param        code      path  string  true  "código"
// @Success      200  {object}  dto.CodeDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/codes/details/{grp_code}/{code} [get]
func (h *CodeHandler) GetDetail(c *fiber.Ctx) error {
	detail, err := h.uc.GetDetail(c.Params("grp_code"), c.Params("code"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(detail)
}
