package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un incidente. Las transiciones permitidas
// están en internal/domain/guardias (tabla de decisión pura).
const (
	EstadoRegistrado = "registrado"
	EstadoRevisado   = "revisado"
	EstadoAprobado   = "aprobado"
	EstadoRechazado  = "rechazado"
	EstadoLiquidado  = "liquidado" // terminal; congela el incidente
)

// Incidente es un evento facturable ocurrido durante una guardia.
type Incidente struct {
	ID              string
	GuardiaID       string
	Inicio          time.Time
	Fin             time.Time // Fin > Inicio
	Descripcion     string
	Estado          string
	RegistradoPor   string
	Observaciones   string
	DuracionMinutos int // derivado: Fin - Inicio en minutos
	Codigos         []*CodigoAplicado
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Bloqueado indica si el incidente ya no admite ediciones ni recálculos persistentes.
func (i *Incidente) Bloqueado() bool {
	return i.Estado == EstadoLiquidado
}

// CodigoAplicado vincula un incidente con un código del nomenclador, con los
// minutos computados y el importe calculado (cero hasta que se calcula).
// El conjunto se reemplaza completo en cada edición del incidente.
type CodigoAplicado struct {
	ID          string
	IncidenteID string
	CodigoID    string
	Codigo      string // snapshot del código al momento de aplicarlo
	Minutos     int
	Importe     decimal.Decimal
	Observacion string
}

// HistorialEstado registra cada transición de estado de un incidente.
// Es append-only: nunca se edita ni se borra.
type HistorialEstado struct {
	ID             string
	IncidenteID    string
	EstadoAnterior string
	EstadoNuevo    string
	CambiadoPor    string
	Observaciones  string
	CreatedAt      time.Time
}
