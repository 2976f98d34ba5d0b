package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

// UserWarehouseHandler maneja las asignaciones usuario-almacén (protegido,
// solo administrador salvo la consulta propia).
type UserWarehouseHandler struct {
	uc *usecase.UserWarehouseUseCase
}

func NewUserWarehouseHandler(uc *usecase.UserWarehouseUseCase) *UserWarehouseHandler {
	return &UserWarehouseHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar almacén a un usuario (reemplaza la asignación activa)
// @Tags         user-warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignWarehouseRequest  true  "usuario y almacén"
// @Success      201   {object}  dto.UserWarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/userWarehouses [post]
func (h *UserWarehouseHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Assign(c.Context(), GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Unassign godoc
// @Summary      Retirar una asignación usuario-almacén (borrado lógico)
// @Tags         user-warehouses
// @Security     Bearer
// @Param        id  path  string  true  "ID de la asignación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/userWarehouses/{id} [delete]
func (h *UserWarehouseHandler) Unassign(c *fiber.Ctx) error {
	if err := h.uc.Unassign(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetActiveByUser godoc
// @Summary      Obtener la asignación activa de un usuario
// @Tags         user-warehouses
// @Security     Bearer
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserWarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/userWarehouses/user/{userId} [get]
func (h *UserWarehouseHandler) GetActiveByUser(c *fiber.Ctx) error {
	out, err := h.uc.GetActiveByUser(c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar asignaciones activas (solo administrador)
// @Tags         user-warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserWarehouseResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/userWarehouses [get]
func (h *UserWarehouseHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(GetCaller(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
