package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | active | rejected"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.Query("status"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(users)
}

// ListPending godoc
// @Summary      Listar registros pendientes de aprobación
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users/pending [get]
func (h *UserHandler) ListPending(c *fiber.Ctx) error {
	users, err := h.uc.ListPending()
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(users)
}

// Approve godoc
// @Summary      Aprobar o rechazar un registro pendiente
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApproveUserRequest  true  "user_id, status (active | rejected)"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/approve [post]
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveUserRequest
	if ok, resp := parseBody(c, &in); !ok {
		return resp
	}
	user, err := h.uc.Approve(in, actor(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}
