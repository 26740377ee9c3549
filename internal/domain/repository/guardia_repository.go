package repository

import (
	"time"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// GuardiaRepository define el puerto de persistencia para guardias.
type GuardiaRepository interface {
	Create(guardia *entity.Guardia) error
	GetByID(id string) (*entity.Guardia, error)
	// GetByFechaUsuario busca la guardia de un titular en una fecha ((fecha, usuario) es único).
	GetByFechaUsuario(fecha time.Time, usuario string) (*entity.Guardia, error)
	ListByRango(desde, hasta time.Time) ([]*entity.Guardia, error)
	List(limit, offset int) ([]*entity.Guardia, error)
	Update(guardia *entity.Guardia) error
	Delete(id string) error
}
