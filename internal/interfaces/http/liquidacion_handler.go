package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/liquidaciones"
)

// LiquidacionHandler maneja las peticiones HTTP para lotes de liquidación (protegido).
type LiquidacionHandler struct {
	uc *liquidaciones.UseCase
}

// NewLiquidacionHandler construye el handler.
func NewLiquidacionHandler(uc *liquidaciones.UseCase) *LiquidacionHandler {
	return &LiquidacionHandler{uc: uc}
}

// Generar crea o regenera el lote de un período. El actor sale del token si no
// viene en el cuerpo.
func (h *LiquidacionHandler) Generar(c *fiber.Ctx) error {
	var in dto.GenerarLiquidacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Actor == "" {
		in.Actor = GetUserID(c)
	}
	out, err := h.uc.Generar(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un lote con sus detalles.
func (h *LiquidacionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "liquidación no encontrada"})
	}
	return c.JSON(out)
}

// PorPeriodo obtiene el lote de un período YYYY-MM con sus detalles.
func (h *LiquidacionHandler) PorPeriodo(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Params("periodo"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay liquidación para el período"})
	}
	return c.JSON(out)
}

// List lista lotes con paginación, sin detalles.
func (h *LiquidacionHandler) List(c *fiber.Ctx) error {
	limit, offset := pagina(c)
	out, err := h.uc.Listar(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado avanza el estado simple del lote.
func (h *LiquidacionHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoLiquidacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CambiarEstado(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
