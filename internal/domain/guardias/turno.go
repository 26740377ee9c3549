package guardias

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bloques de turno para la guardia pasiva. El factor multiplica el valor base
// de guardia pasiva de la tarifa.
const (
	TurnoSemanaNoche  = "semana_noche"   // lunes a viernes desde las 17:00
	TurnoSabadoManana = "sabado_manana"  // sábado 08:00 a 14:00
	TurnoSabadoTarde  = "sabado_tarde"   // sábado desde las 14:00
	TurnoDomingo      = "domingo_feriado" // domingo o feriado, todo el día
	TurnoSinClasificar = "sin_clasificar"
)

// Turno es el bloque clasificado y su factor proporcional.
type Turno struct {
	Nombre string
	Factor decimal.Decimal
}

var (
	factorSemanaNoche  = decimal.NewFromInt(1)
	factorSabadoManana = decimal.RequireFromString("0.75")
	factorSabadoTarde  = decimal.RequireFromString("1.375")
	factorDomingo      = decimal.RequireFromString("2.125")
)

// ClasificarTurno determina el bloque de guardia pasiva según el día y la hora
// de inicio del incidente. El segundo valor indica si el inicio cayó dentro de
// algún bloque definido: cuando es false el llamador debe aplicar el factor
// base (1.0) y dejar constancia explícita, nunca en silencio.
func ClasificarTurno(inicio time.Time, esFeriado bool) (Turno, bool) {
	minuto := MinutoDelDia(inicio.Hour(), inicio.Minute())
	dia := inicio.Weekday()

	if esFeriado || dia == time.Sunday {
		return Turno{Nombre: TurnoDomingo, Factor: factorDomingo}, true
	}
	if dia == time.Saturday {
		if minuto >= MinutoDelDia(8, 0) && minuto < MinutoDelDia(14, 0) {
			return Turno{Nombre: TurnoSabadoManana, Factor: factorSabadoManana}, true
		}
		if minuto >= MinutoDelDia(14, 0) {
			return Turno{Nombre: TurnoSabadoTarde, Factor: factorSabadoTarde}, true
		}
		return Turno{Nombre: TurnoSinClasificar, Factor: factorSemanaNoche}, false
	}
	// Lunes a viernes: bloque vespertino desde las 17:00. La madrugada (antes
	// de las 06:00) pertenece al bloque de la noche anterior.
	if minuto >= MinutoDelDia(17, 0) || minuto < MinutoDelDia(6, 0) {
		return Turno{Nombre: TurnoSemanaNoche, Factor: factorSemanaNoche}, true
	}
	return Turno{Nombre: TurnoSinClasificar, Factor: factorSemanaNoche}, false
}

// RecargoActiva indica si corresponde el recargo de día no laborable (1.5x)
// sobre el valor hora de guardia activa: sábado desde las 14:00, domingo o feriado.
func RecargoActiva(inicio time.Time, esFeriado bool) bool {
	if esFeriado || inicio.Weekday() == time.Sunday {
		return true
	}
	return inicio.Weekday() == time.Saturday && MinutoDelDia(inicio.Hour(), inicio.Minute()) >= MinutoDelDia(14, 0)
}
