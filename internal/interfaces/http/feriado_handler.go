package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/feriados"
)

// FeriadoHandler maneja el calendario de feriados (protegido).
type FeriadoHandler struct {
	uc *feriados.UseCase
}

// NewFeriadoHandler construye el handler.
func NewFeriadoHandler(uc *feriados.UseCase) *FeriadoHandler {
	return &FeriadoHandler{uc: uc}
}

// Create da de alta un feriado.
func (h *FeriadoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeriadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista los feriados de un año (query anio, por defecto el actual).
func (h *FeriadoHandler) List(c *fiber.Ctx) error {
	anio := c.QueryInt("anio", time.Now().Year())
	out, err := h.uc.ListarPorAnio(anio)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un feriado.
func (h *FeriadoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
