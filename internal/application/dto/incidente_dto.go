package dto

import "github.com/shopspring/decimal"

// CodigoAplicadoRequest un código a aplicar sobre el incidente.
type CodigoAplicadoRequest struct {
	CodigoID    string `json:"codigo_id" validate:"required"`
	Observacion string `json:"observacion,omitempty"`
}

// CreateIncidenteRequest alta de un incidente dentro de una guardia.
// Inicio/Fin en RFC 3339.
type CreateIncidenteRequest struct {
	GuardiaID   string                  `json:"guardia_id" validate:"required"`
	Inicio      string                  `json:"inicio" validate:"required"`
	Fin         string                  `json:"fin" validate:"required"`
	Descripcion string                  `json:"descripcion" validate:"required"`
	Codigos     []CodigoAplicadoRequest `json:"codigos" validate:"dive"`
}

// UpdateIncidenteRequest edición de un incidente no liquidado. El conjunto de
// códigos reemplaza por completo al anterior.
type UpdateIncidenteRequest struct {
	Inicio        *string                 `json:"inicio,omitempty"`
	Fin           *string                 `json:"fin,omitempty"`
	Descripcion   *string                 `json:"descripcion,omitempty"`
	Observaciones *string                 `json:"observaciones,omitempty"`
	Codigos       []CodigoAplicadoRequest `json:"codigos,omitempty" validate:"omitempty,dive"`
}

// TransicionRequest cambio de estado de un incidente.
type TransicionRequest struct {
	Estado string `json:"estado" validate:"required"`
	Actor  string `json:"actor" validate:"required"`
	Nota   string `json:"nota,omitempty"`
}

// CodigoAplicadoResponse salida de un código aplicado.
type CodigoAplicadoResponse struct {
	ID          string          `json:"id"`
	CodigoID    string          `json:"codigo_id"`
	Codigo      string          `json:"codigo"`
	Minutos     int             `json:"minutos"`
	Importe     decimal.Decimal `json:"importe"`
	Observacion string          `json:"observacion,omitempty"`
}

// IncidenteResponse representación de salida de un incidente.
type IncidenteResponse struct {
	ID              string                   `json:"id"`
	GuardiaID       string                   `json:"guardia_id"`
	Inicio          string                   `json:"inicio"`
	Fin             string                   `json:"fin"`
	Descripcion     string                   `json:"descripcion"`
	Estado          string                   `json:"estado"`
	RegistradoPor   string                   `json:"registrado_por"`
	Observaciones   string                   `json:"observaciones,omitempty"`
	DuracionMinutos int                      `json:"duracion_minutos"`
	Codigos         []CodigoAplicadoResponse `json:"codigos"`
}

// HistorialResponse una fila del historial de estados.
type HistorialResponse struct {
	EstadoAnterior string `json:"estado_anterior"`
	EstadoNuevo    string `json:"estado_nuevo"`
	CambiadoPor    string `json:"cambiado_por"`
	Observaciones  string `json:"observaciones,omitempty"`
	Fecha          string `json:"fecha"`
}
