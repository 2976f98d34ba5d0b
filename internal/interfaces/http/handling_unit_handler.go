package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

// HandlingUnitHandler maneja las peticiones HTTP del catálogo de presentaciones.
type HandlingUnitHandler struct {
	uc *usecase.HandlingUnitUseCase
}

func NewHandlingUnitHandler(uc *usecase.HandlingUnitUseCase) *HandlingUnitHandler {
	return &HandlingUnitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear presentación
// @Tags         handling-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHandlingUnitRequest  true  "datos de la presentación"
// @Success      201   {object}  dto.HandlingUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/handlingUnits [post]
func (h *HandlingUnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHandlingUnitRequest
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
// @Summary      Obtener presentación por ID
// @Tags         handling-units
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la presentación"
// @Success      200  {object}  dto.HandlingUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/handlingUnits/{id} [get]
func (h *HandlingUnitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar presentación
// @Tags         handling-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la presentación"
// @Param        body  body  dto.UpdateHandlingUnitRequest true  "datos de la presentación"
// @Success      200  {object}  dto.HandlingUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/handlingUnits/{id} [put]
func (h *HandlingUnitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateHandlingUnitRequest
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
// @Summary      Listar presentaciones activas
// @Tags         handling-units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.HandlingUnitResponse
// @Router       /api/handlingUnits [get]
func (h *HandlingUnitHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de presentación
// @Tags         handling-units
// @Security     Bearer
// @Param        id  path  string  true  "ID de la presentación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/handlingUnits/{id} [delete]
func (h *HandlingUnitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar presentación eliminada
// @Tags         handling-units
// @Security     Bearer
// @Param        id  path  string  true  "ID de la presentación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/handlingUnits/{id}/restore [post]
func (h *HandlingUnitHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
