package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/tarifas"
)

// TarifaHandler maneja las peticiones HTTP para tarifas (protegido).
type TarifaHandler struct {
	uc *tarifas.UseCase
}

// NewTarifaHandler construye el handler.
func NewTarifaHandler(uc *tarifas.UseCase) *TarifaHandler {
	return &TarifaHandler{uc: uc}
}

// Create da de alta una tarifa versionada.
func (h *TarifaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTarifaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una tarifa.
func (h *TarifaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarifa no encontrada"})
	}
	return c.JSON(out)
}

// List lista tarifas con paginación.
func (h *TarifaHandler) List(c *fiber.Ctx) error {
	limit, offset := pagina(c)
	out, err := h.uc.Listar(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Vigente resuelve la tarifa vigente para una fecha (query fecha=YYYY-MM-DD,
// por defecto hoy).
func (h *TarifaHandler) Vigente(c *fiber.Ctx) error {
	fecha := time.Now()
	if s := c.Query("fecha"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, se espera YYYY-MM-DD"})
		}
		fecha = t
	}
	tarifa, err := h.uc.Resolver(fecha)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(tarifa.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update edita valores u observaciones de una tarifa.
func (h *TarifaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTarifaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Desactivar baja lógica de una tarifa.
func (h *TarifaHandler) Desactivar(c *fiber.Ctx) error {
	if err := h.uc.Desactivar(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
