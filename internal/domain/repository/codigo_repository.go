package repository

import (
	"time"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// CodigoRepository define el puerto de persistencia para el nomenclador de códigos.
type CodigoRepository interface {
	Create(codigo *entity.CodigoFacturacion) error
	GetByID(id string) (*entity.CodigoFacturacion, error)
	// ListByCodigoModalidad devuelve todas las versiones de un código para una
	// modalidad (para el control de solapamiento de vigencias).
	ListByCodigoModalidad(codigo, modalidad string) ([]*entity.CodigoFacturacion, error)
	// ListVigentes devuelve los códigos activos cuya vigencia cubre la fecha.
	ListVigentes(fecha time.Time, modalidad string) ([]*entity.CodigoFacturacion, error)
	List(limit, offset int) ([]*entity.CodigoFacturacion, error)
	Update(codigo *entity.CodigoFacturacion) error
	// Desactivar marca el código como inactivo (baja lógica, nunca borrado físico).
	Desactivar(id string) error
}
