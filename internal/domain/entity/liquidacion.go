package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una liquidación (campo simple, sin máquina de estados propia).
const (
	LiquidacionPendiente = "pendiente"
	LiquidacionProcesada = "procesada"
	LiquidacionCerrada   = "cerrada"
)

// Liquidacion es el lote que cierra un período (YYYY-MM) con un detalle por
// (incidente, guardia, titular). Regenerarla reemplaza todos los detalles.
type Liquidacion struct {
	ID              string
	Periodo         string // formato YYYY-MM, único
	Estado          string
	FechaGeneracion time.Time
	TotalMinutos    int
	TotalImporte    decimal.Decimal
	Detalles        []*LiquidacionDetalle
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IncidenteGuardia es la vista que consume el agregador: un incidente con el
// titular y la fecha de su guardia ya resueltos.
type IncidenteGuardia struct {
	Incidente *Incidente
	Usuario   string
	Fecha     time.Time
}

// LiquidacionDetalle es una fila del lote: minutos e importe de un incidente
// liquidado, con el titular y la fecha de la guardia.
type LiquidacionDetalle struct {
	ID            string
	LiquidacionID string
	IncidenteID   string
	GuardiaID     string
	Usuario       string
	Fecha         time.Time
	Minutos       int
	Importe       decimal.Decimal
}
