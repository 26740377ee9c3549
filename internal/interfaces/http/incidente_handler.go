package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/incidentes"
)

// IncidenteHandler maneja las peticiones HTTP para incidentes (protegido).
type IncidenteHandler struct {
	uc *incidentes.UseCase
}

// NewIncidenteHandler construye el handler.
func NewIncidenteHandler(uc *incidentes.UseCase) *IncidenteHandler {
	return &IncidenteHandler{uc: uc}
}

// Create registra un incidente. El registrado_por sale del token.
func (h *IncidenteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncidenteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un incidente con sus códigos aplicados.
func (h *IncidenteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "incidente no encontrado"})
	}
	return c.JSON(out)
}

// Update edita un incidente no liquidado.
func (h *IncidenteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIncidenteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transicion cambia el estado del incidente según la tabla de transiciones.
func (h *IncidenteHandler) Transicion(c *fiber.Ctx) error {
	var in dto.TransicionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Actor == "" {
		in.Actor = GetUserID(c)
	}
	out, err := h.uc.Transicionar(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calculo computa el desglose de facturación del incidente. Si no está
// liquidado, persiste los importes por código como snapshot.
func (h *IncidenteHandler) Calculo(c *fiber.Ctx) error {
	out, err := h.uc.CalcularFacturacion(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Historial devuelve las transiciones registradas del incidente.
func (h *IncidenteHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
