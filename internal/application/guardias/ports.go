package guardias

import (
	"context"

	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de guardias e incidentes atados a esa tx, para la baja en cascada.
type TxRunner interface {
	RunGuardia(ctx context.Context, fn func(
		guardiaRepo repository.GuardiaRepository,
		incRepo repository.IncidenteRepository,
	) error) error
}
