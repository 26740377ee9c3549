package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// IncidenteRepository define el puerto de persistencia para incidentes,
// sus códigos aplicados y el historial de estados.
type IncidenteRepository interface {
	Create(incidente *entity.Incidente) error
	GetByID(id string) (*entity.Incidente, error)
	ListByGuardia(guardiaID string) ([]*entity.Incidente, error)
	// ListAprobadosEnRango devuelve incidentes en estado aprobado cuya guardia
	// cae en [desde, hasta), con titular y fecha de guardia resueltos.
	ListAprobadosEnRango(desde, hasta time.Time) ([]*entity.IncidenteGuardia, error)
	Update(incidente *entity.Incidente) error
	Delete(id string) error
	DeleteByGuardia(guardiaID string) error

	// Códigos aplicados: el conjunto se reemplaza completo (borrar y reinsertar
	// dentro de la misma transacción), nunca se parchea parcialmente.
	CreateCodigo(codigo *entity.CodigoAplicado) error
	DeleteCodigosByIncidente(incidenteID string) error
	ListCodigos(incidenteID string) ([]*entity.CodigoAplicado, error)
	// UpdateCodigoImporte persiste el importe calculado de un código aplicado.
	UpdateCodigoImporte(codigoAplicadoID string, importe decimal.Decimal) error

	// Historial de estados (append-only; sólo se borra junto con el incidente).
	CreateHistorial(hist *entity.HistorialEstado) error
	ListHistorial(incidenteID string) ([]*entity.HistorialEstado, error)
	DeleteHistorialByIncidente(incidenteID string) error
}
