package http

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/farmastock/almacen-api/internal/application/dto"
	"github.com/farmastock/almacen-api/internal/application/usecase"
)

// PersonHandler maneja las peticiones HTTP de personas (protegido). El alta
// puede incluir el onboarding de usuario y asignación de almacén.
type PersonHandler struct {
	uc        *usecase.PersonUseCase
	uploadDir string
}

// NewPersonHandler construye el handler. uploadDir es el directorio donde se
// guardan las fotos subidas.
func NewPersonHandler(uc *usecase.PersonUseCase, uploadDir string) *PersonHandler {
	return &PersonHandler{uc: uc, uploadDir: uploadDir}
}

// Create godoc
// @Summary      Crear persona (con onboarding opcional de usuario)
// @Tags         persons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonRequest  true  "datos de la persona"
// @Success      201   {object}  dto.PersonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/persons [post]
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePersonRequest
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
// @Summary      Obtener persona por ID
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la persona"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [get]
func (h *PersonHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar persona
// @Tags         persons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la persona"
// @Param        body  body  dto.UpdatePersonRequest true  "datos de la persona"
// @Success      200  {object}  dto.PersonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [put]
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePersonRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetCaller(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadPhoto godoc
// @Summary      Subir foto de la persona (multipart, campo "photo")
// @Tags         persons
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "ID de la persona"
// @Param        photo  formData  file    true  "imagen"
// @Success      200  {object}  dto.PersonResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id}/photo [post]
func (h *PersonHandler) UploadPhoto(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo photo"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato de imagen no soportado"})
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		return respondError(c, err)
	}

	out, err := h.uc.Update(GetCaller(c), c.Params("id"), dto.UpdatePersonRequest{PhotoPath: &name})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar personas activas
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PersonResponse
// @Router       /api/persons [get]
func (h *PersonHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de persona
// @Tags         persons
// @Security     Bearer
// @Param        id  path  string  true  "ID de la persona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/persons/{id} [delete]
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar persona eliminada
// @Tags         persons
// @Security     Bearer
// @Param        id  path  string  true  "ID de la persona"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/persons/{id}/restore [post]
func (h *PersonHandler) Restore(c *fiber.Ctx) error {
	if err := h.uc.Restore(GetCaller(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckCI godoc
// @Summary      Verificar si existe una persona activa con esa cédula
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        ci  path  string  true  "cédula de identidad"
// @Success      200  {object}  dto.ExistsResponse
// @Router       /api/persons/checkCI/{ci} [get]
func (h *PersonHandler) CheckCI(c *fiber.Ctx) error {
	exists, err := h.uc.CheckCIExists(c.Params("ci"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ExistsResponse{Exists: exists})
}

// CheckEmail godoc
// @Summary      Verificar si existe una persona activa con ese email
// @Tags         persons
// @Security     Bearer
// @Produce      json
// @Param        email  path  string  true  "correo electrónico"
// @Success      200  {object}  dto.ExistsResponse
// @Router       /api/persons/checkEmail/{email} [get]
func (h *PersonHandler) CheckEmail(c *fiber.Ctx) error {
	exists, err := h.uc.CheckEmailExists(c.Params("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ExistsResponse{Exists: exists})
}
