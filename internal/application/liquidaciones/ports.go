package liquidaciones

import (
	"context"

	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios de incidentes y liquidaciones atados a esa tx. La generación
// del lote (cabecera, detalles y transición de los incidentes incluidos) es
// atómica: o entra completa o no entra nada.
type TxRunner interface {
	RunLiquidacion(ctx context.Context, fn func(incRepo repository.IncidenteRepository, liqRepo repository.LiquidacionRepository) error) error
}
