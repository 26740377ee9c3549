package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tarifa es una hoja de valores versionada. Para un mismo Nombre las vigencias
// no pueden solaparse; la resolución por fecha elige la de VigenciaDesde más reciente.
type Tarifa struct {
	ID                    string
	Nombre                string
	ValorGuardiaPasiva    decimal.Decimal // monto fijo por bloque de guardia pasiva
	ValorHoraActiva       decimal.Decimal // valor hora de guardia activa
	ValorNocturnoHabil    decimal.Decimal // valor fijo por hora nocturna en día hábil
	ValorNocturnoNoHabil  decimal.Decimal // valor fijo por hora nocturna en día no hábil
	VigenciaDesde         time.Time
	VigenciaHasta         *time.Time // nil = vigencia abierta
	Activo                bool
	Observaciones         string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// VigenteEn indica si la fecha cae dentro del rango de vigencia.
func (t *Tarifa) VigenteEn(fecha time.Time) bool {
	if fecha.Before(t.VigenciaDesde) {
		return false
	}
	if t.VigenciaHasta != nil && fecha.After(*t.VigenciaHasta) {
		return false
	}
	return true
}

// SolapaCon indica si dos rangos de vigencia se superponen.
// Un rango con Hasta nil se considera abierto hacia adelante.
func (t *Tarifa) SolapaCon(desde time.Time, hasta *time.Time) bool {
	// t termina antes de que empiece el otro
	if t.VigenciaHasta != nil && t.VigenciaHasta.Before(desde) {
		return false
	}
	// el otro termina antes de que empiece t
	if hasta != nil && hasta.Before(t.VigenciaDesde) {
		return false
	}
	return true
}
