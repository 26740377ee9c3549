package dto

import "github.com/shopspring/decimal"

// GenerarLiquidacionRequest genera (o regenera) el lote de un período YYYY-MM.
type GenerarLiquidacionRequest struct {
	Periodo string `json:"periodo" validate:"required"`
	Actor   string `json:"actor" validate:"required"`
}

// CambiarEstadoLiquidacionRequest cambio del estado simple del lote.
type CambiarEstadoLiquidacionRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente procesada cerrada"`
}

// LiquidacionDetalleResponse una fila del lote.
type LiquidacionDetalleResponse struct {
	IncidenteID string          `json:"incidente_id"`
	GuardiaID   string          `json:"guardia_id"`
	Usuario     string          `json:"usuario"`
	Fecha       string          `json:"fecha"`
	Minutos     int             `json:"minutos"`
	Importe     decimal.Decimal `json:"importe"`
}

// LiquidacionResponse representación de salida del lote.
type LiquidacionResponse struct {
	ID              string                       `json:"id"`
	Periodo         string                       `json:"periodo"`
	Estado          string                       `json:"estado"`
	FechaGeneracion string                       `json:"fecha_generacion"`
	TotalMinutos    int                          `json:"total_minutos"`
	TotalImporte    decimal.Decimal              `json:"total_importe"`
	Detalles        []LiquidacionDetalleResponse `json:"detalles"`
}
