package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

// TypeOfMovementHandler maneja las peticiones HTTP de tipos de movimiento.
type TypeOfMovementHandler struct {
	uc *usecase.TypeOfMovementUseCase
}

func NewTypeOfMovementHandler(uc *usecase.TypeOfMovementUseCase) *TypeOfMovementHandler {
	return &TypeOfMovementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de movimiento
// @Tags         types-of-movement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTypeOfMovementRequest  true  "datos del tipo"
// @Success      201   {object}  dto.TypeOfMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/typesOfMovement [post]
func (h *TypeOfMovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTypeOfMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de movimiento por ID
// @Tags         types-of-movement
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del tipo"
// @Success      200  {object}  dto.TypeOfMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/typesOfMovement/{id} [get]
func (h *TypeOfMovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tipo de movimiento
// @Tags         types-of-movement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del tipo"
// @Param        body  body  dto.UpdateTypeOfMovementRequest true  "datos del tipo"
// @Success      200  {object}  dto.TypeOfMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/typesOfMovement/{id} [put]
func (h *TypeOfMovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTypeOfMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tipos de movimiento activos
// @Tags         types-of-movement
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TypeOfMovementResponse
// @Router       /api/typesOfMovement [get]
func (h *TypeOfMovementHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de tipo de movimiento
// @Tags         types-of-movement
// @Security     Bearer
// @Param        id  path  string  true  "ID del tipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/typesOfMovement/{id} [delete]
func (h *TypeOfMovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar tipo de movimiento eliminado
// @Tags         types-of-movement
// @Security     Bearer
// @Param        id  path  string  true  "ID del tipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/typesOfMovement/{id}/restore [post]
func (h *TypeOfMovementHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
