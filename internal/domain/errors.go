package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrValidacion           = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrConflicto            = errors.New("conflicto con el estado actual")
	ErrSolapamientoVigencia = errors.New("la vigencia se solapa con un registro existente")
	ErrSinTarifaVigente     = errors.New("no hay tarifa vigente para la fecha")
	ErrTransicionInvalida   = errors.New("transición de estado no permitida")
	ErrIncidenteBloqueado   = errors.New("el incidente está liquidado y no admite cambios")
)
