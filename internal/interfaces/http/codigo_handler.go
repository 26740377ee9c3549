package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/codigos"
	"github.com/guslozua/bitacora-api/internal/application/dto"
)

// CodigoHandler maneja las peticiones HTTP para el nomenclador (protegido).
type CodigoHandler struct {
	uc *codigos.UseCase
}

// NewCodigoHandler construye el handler.
func NewCodigoHandler(uc *codigos.UseCase) *CodigoHandler {
	return &CodigoHandler{uc: uc}
}

// Create da de alta un código del nomenclador.
func (h *CodigoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Aplicables devuelve los códigos que aplican a una fecha y franja horaria.
// Query: fecha, hora_inicio, hora_fin, modalidad.
func (h *CodigoHandler) Aplicables(c *fiber.Ctx) error {
	var in dto.BuscarAplicablesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.BuscarAplicablesDTO(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un código.
func (h *CodigoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código no encontrado"})
	}
	return c.JSON(out)
}

// List lista códigos con paginación.
func (h *CodigoHandler) List(c *fiber.Ctx) error {
	limit, offset := pagina(c)
	out, err := h.uc.Listar(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edita un código.
func (h *CodigoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCodigoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Desactivar baja lógica de un código.
func (h *CodigoHandler) Desactivar(c *fiber.Ctx) error {
	if err := h.uc.Desactivar(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
