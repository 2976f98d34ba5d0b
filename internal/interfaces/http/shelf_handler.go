package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

// ShelfHandler maneja las peticiones HTTP de estantes (protegido).
type ShelfHandler struct {
	uc *usecase.ShelfUseCase
}

// NewShelfHandler construye el handler.
func NewShelfHandler(uc *usecase.ShelfUseCase) *ShelfHandler {
	return &ShelfHandler{uc: uc}
}

// Create godoc
// @Summary      Crear estante en un almacén del alcance del caller
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShelfRequest  true  "datos del estante"
// @Success      201   {object}  dto.ShelfResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/shelves [post]
func (h *ShelfHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShelfRequest
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
// @Summary      Obtener estante por ID
// @Tags         shelves
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del estante"
// @Success      200  {object}  dto.ShelfResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [get]
func (h *ShelfHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estante
// @Tags         shelves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del estante"
// @Param        body  body  dto.UpdateShelfRequest true  "datos del estante"
// @Success      200  {object}  dto.ShelfResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [put]
func (h *ShelfHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShelfRequest
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
// @Summary      Listar estantes del alcance del caller
// @Tags         shelves
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShelfResponse
// @Router       /api/shelves [get]
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(GetCaller(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de estante
// @Tags         shelves
// @Security     Bearer
// @Param        id  path  string  true  "ID del estante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id} [delete]
func (h *ShelfHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar estante eliminado
// @Tags         shelves
// @Security     Bearer
// @Param        id  path  string  true  "ID del estante"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shelves/{id}/restore [post]
func (h *ShelfHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
