package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/ledger"
)

// BonusHandler maneja las peticiones HTTP de bonificaciones (protegido).
type BonusHandler struct {
	uc *ledger.BonusUseCase
}

// NewBonusHandler construye el handler.
func NewBonusHandler(uc *ledger.BonusUseCase) *BonusHandler {
	return &BonusHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar bonificación sobre un lote activo
// @Tags         bonuses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBonusRequest  true  "datos de la bonificación"
// @Success      201   {object}  dto.BonusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bonuses [post]
func (h *BonusHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBonusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCaller(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bonificación por ID
// @Tags         bonuses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bonificación"
// @Success      200  {object}  dto.BonusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bonuses/{id} [get]
func (h *BonusHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetCaller(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bonificaciones del alcance del caller
// @Tags         bonuses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BonusResponse
// @Router       /api/bonuses [get]
func (h *BonusHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(c.Context(), GetCaller(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByBatch godoc
// @Summary      Listar bonificaciones de un lote
// @Tags         bonuses
// @Security     Bearer
// @Produce      json
// @Param        batchId  path  string  true  "ID del lote"
// @Success      200  {array}  dto.BonusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bonuses/batch/{batchId} [get]
func (h *BonusHandler) ListByBatch(c *fiber.Ctx) error {
	out, err := h.uc.ListByBatch(c.Context(), GetCaller(c), c.Params("batchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
