package incidentes

import (
	"context"
	"time"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de incidentes atado a esa tx. Garantiza que el alta/edición de
// un incidente y el reemplazo completo de sus códigos sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(incRepo repository.IncidenteRepository) error) error
}

// TarifaResolver resuelve la tarifa vigente para una fecha. Lo implementa el
// caso de uso de tarifas; el error debe ser ErrSinTarifaVigente cuando no hay
// ninguna, y eso corta el cálculo (nunca se usa un valor por defecto).
type TarifaResolver interface {
	Resolver(fecha time.Time) (*entity.Tarifa, error)
}
