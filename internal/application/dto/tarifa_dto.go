package dto

import "github.com/shopspring/decimal"

// CreateTarifaRequest alta de una tarifa versionada. Fechas en formato YYYY-MM-DD.
type CreateTarifaRequest struct {
	Nombre               string          `json:"nombre" validate:"required"`
	ValorGuardiaPasiva   decimal.Decimal `json:"valor_guardia_pasiva"`
	ValorHoraActiva      decimal.Decimal `json:"valor_hora_activa"`
	ValorNocturnoHabil   decimal.Decimal `json:"valor_nocturno_habil"`
	ValorNocturnoNoHabil decimal.Decimal `json:"valor_nocturno_no_habil"`
	VigenciaDesde        string          `json:"vigencia_desde" validate:"required"`
	VigenciaHasta        *string         `json:"vigencia_hasta,omitempty"` // nil = vigencia abierta
	Observaciones        string          `json:"observaciones,omitempty"`
}

// UpdateTarifaRequest edición parcial (punteros = campo no enviado).
type UpdateTarifaRequest struct {
	ValorGuardiaPasiva   *decimal.Decimal `json:"valor_guardia_pasiva,omitempty"`
	ValorHoraActiva      *decimal.Decimal `json:"valor_hora_activa,omitempty"`
	ValorNocturnoHabil   *decimal.Decimal `json:"valor_nocturno_habil,omitempty"`
	ValorNocturnoNoHabil *decimal.Decimal `json:"valor_nocturno_no_habil,omitempty"`
	VigenciaHasta        *string          `json:"vigencia_hasta,omitempty"`
	Observaciones        *string          `json:"observaciones,omitempty"`
}

// TarifaResponse representación de salida de una tarifa.
type TarifaResponse struct {
	ID                   string          `json:"id"`
	Nombre               string          `json:"nombre"`
	ValorGuardiaPasiva   decimal.Decimal `json:"valor_guardia_pasiva"`
	ValorHoraActiva      decimal.Decimal `json:"valor_hora_activa"`
	ValorNocturnoHabil   decimal.Decimal `json:"valor_nocturno_habil"`
	ValorNocturnoNoHabil decimal.Decimal `json:"valor_nocturno_no_habil"`
	VigenciaDesde        string          `json:"vigencia_desde"`
	VigenciaHasta        *string         `json:"vigencia_hasta,omitempty"`
	Activo               bool            `json:"activo"`
	Observaciones        string          `json:"observaciones,omitempty"`
}
