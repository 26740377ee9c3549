package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de código de facturación.
const (
	TipoGuardiaPasiva = "guardia_pasiva"
	TipoGuardiaActiva = "guardia_activa"
	TipoHoraNocturna  = "hora_nocturna"
	TipoFeriado       = "feriado"
	TipoFinSemana     = "fin_semana"
	TipoAdicional     = "adicional"
)

// Modalidad contractual del código.
const (
	ModalidadDentroConvenio = "dentro_convenio"
	ModalidadFueraConvenio  = "fuera_convenio"
)

// Letras de día aplicable. "F" representa feriado y tiene precedencia
// sobre la letra del día de semana al momento de evaluar aplicabilidad.
const (
	DiaLunes     = "L"
	DiaMartes    = "M"
	DiaMiercoles = "X"
	DiaJueves    = "J"
	DiaViernes   = "V"
	DiaSabado    = "S"
	DiaDomingo   = "D"
	DiaFeriado   = "F"
)

// CodigoFacturacion representa una categoría facturable del nomenclador.
// FranjaInicio/FranjaFin son minutos desde medianoche; nil = aplica todo el día.
// La franja puede cruzar medianoche (FranjaFin < FranjaInicio).
type CodigoFacturacion struct {
	ID             string
	Codigo         string
	Descripcion    string
	Tipo           string
	DiasAplicables []string
	FranjaInicio   *int
	FranjaFin      *int
	Factor         decimal.Decimal
	VigenciaDesde  time.Time
	VigenciaHasta  *time.Time // nil = vigencia abierta
	Activo         bool
	Modalidad      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TieneFranja indica si el código restringe por franja horaria.
func (c *CodigoFacturacion) TieneFranja() bool {
	return c.FranjaInicio != nil && c.FranjaFin != nil
}

// VigenteEn indica si la fecha cae dentro del rango de vigencia [Desde, Hasta].
func (c *CodigoFacturacion) VigenteEn(fecha time.Time) bool {
	if fecha.Before(c.VigenciaDesde) {
		return false
	}
	if c.VigenciaHasta != nil && fecha.After(*c.VigenciaHasta) {
		return false
	}
	return true
}

// AplicaDia indica si la letra de día está entre los días aplicables.
func (c *CodigoFacturacion) AplicaDia(letra string) bool {
	for _, d := range c.DiasAplicables {
		if d == letra {
			return true
		}
	}
	return false
}
