package repository

import (
	"time"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// TarifaRepository define el puerto de persistencia para tarifas versionadas.
type TarifaRepository interface {
	Create(tarifa *entity.Tarifa) error
	GetByID(id string) (*entity.Tarifa, error)
	// ListVigentes devuelve las tarifas activas cuya vigencia cubre la fecha.
	ListVigentes(fecha time.Time) ([]*entity.Tarifa, error)
	// ListByNombre devuelve las tarifas activas con ese nombre (control de solapamiento).
	ListByNombre(nombre string) ([]*entity.Tarifa, error)
	List(limit, offset int) ([]*entity.Tarifa, error)
	Update(tarifa *entity.Tarifa) error
	// Desactivar es baja lógica; los importes ya liquidados no se recalculan.
	Desactivar(id string) error
}
