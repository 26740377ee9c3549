package repository

import "github.com/guslozua/bitacora-api/internal/domain/entity"

// LiquidacionRepository define el puerto de persistencia para liquidaciones.
type LiquidacionRepository interface {
	Create(liq *entity.Liquidacion) error
	GetByID(id string) (*entity.Liquidacion, error)
	GetByPeriodo(periodo string) (*entity.Liquidacion, error)
	List(limit, offset int) ([]*entity.Liquidacion, error)
	Update(liq *entity.Liquidacion) error

	CreateDetalle(det *entity.LiquidacionDetalle) error
	// DeleteDetalles elimina todos los detalles del lote (regeneración atómica:
	// borrar e insertar dentro de la misma transacción).
	DeleteDetalles(liquidacionID string) error
	ListDetalles(liquidacionID string) ([]*entity.LiquidacionDetalle, error)
}
