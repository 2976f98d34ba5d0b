package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

// MedicationHandlingUnitHandler maneja las peticiones HTTP de ubicaciones
// medicamento-presentación-estante (protegido).
type MedicationHandlingUnitHandler struct {
	uc *usecase.MedicationHandlingUnitUseCase
}

func NewMedicationHandlingUnitHandler(uc *usecase.MedicationHandlingUnitUseCase) *MedicationHandlingUnitHandler {
	return &MedicationHandlingUnitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación medicamento-presentación en un estante
// @Tags         medication-handling-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMedicationHandlingUnitRequest  true  "datos de la ubicación"
// @Success      201   {object}  dto.MedicationHandlingUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/medicationHandlingUnits [post]
func (h *MedicationHandlingUnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMedicationHandlingUnitRequest
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
// @Summary      Obtener ubicación por ID
// @Tags         medication-handling-units
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.MedicationHandlingUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicationHandlingUnits/{id} [get]
func (h *MedicationHandlingUnitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ubicación (estante, relaciones y banderas de detalle)
// @Tags         medication-handling-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                                  true  "ID de la ubicación"
// @Param        body  body  dto.UpdateMedicationHandlingUnitRequest true  "datos de la ubicación"
// @Success      200  {object}  dto.MedicationHandlingUnitResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicationHandlingUnits/{id} [put]
func (h *MedicationHandlingUnitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMedicationHandlingUnitRequest
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
// @Summary      Listar ubicaciones del alcance del caller
// @Tags         medication-handling-units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MedicationHandlingUnitResponse
// @Router       /api/medicationHandlingUnits [get]
func (h *MedicationHandlingUnitHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(GetCaller(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de ubicación
// @Tags         medication-handling-units
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicationHandlingUnits/{id} [delete]
func (h *MedicationHandlingUnitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar ubicación eliminada (solo administrador)
// @Tags         medication-handling-units
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicationHandlingUnits/{id}/restore [post]
func (h *MedicationHandlingUnitHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
