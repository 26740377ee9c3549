package repository

import (
	"time"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// FeriadoRepository es el calendario de feriados consumido por el motor.
type FeriadoRepository interface {
	Create(feriado *entity.Feriado) error
	// EsFeriado responde si la fecha (parte día) es feriado.
	EsFeriado(fecha time.Time) (bool, error)
	ListByAnio(anio int) ([]*entity.Feriado, error)
	Delete(id string) error
}
