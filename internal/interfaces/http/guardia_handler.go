package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/guardias"
)

// GuardiaHandler maneja las peticiones HTTP para guardias (protegido).
type GuardiaHandler struct {
	uc *guardias.UseCase
}

// NewGuardiaHandler construye el handler.
func NewGuardiaHandler(uc *guardias.UseCase) *GuardiaHandler {
	return &GuardiaHandler{uc: uc}
}

// Create da de alta una guardia.
func (h *GuardiaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGuardiaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una guardia.
func (h *GuardiaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "guardia no encontrada"})
	}
	return c.JSON(out)
}

// List lista guardias con paginación.
func (h *GuardiaHandler) List(c *fiber.Ctx) error {
	limit, offset := pagina(c)
	out, err := h.uc.Listar(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edita titular o notas de una guardia.
func (h *GuardiaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGuardiaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete borra la guardia con sus incidentes en cascada. Si algún incidente ya
// está liquidado responde 422.
func (h *GuardiaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
