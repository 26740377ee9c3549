package guardias

import (
	"time"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// ClasificarDia devuelve la letra de día para evaluar aplicabilidad de códigos.
// El feriado tiene precedencia sobre la letra del día de semana: un código que
// lista "F" matchea solo si la fecha es feriado, y en un feriado no matchea
// la letra del día de semana.
func ClasificarDia(fecha time.Time, esFeriado bool) string {
	if esFeriado {
		return entity.DiaFeriado
	}
	return LetraDia(fecha.Weekday())
}

// LetraDia mapea time.Weekday a la letra usada en el nomenclador.
func LetraDia(dia time.Weekday) string {
	switch dia {
	case time.Monday:
		return entity.DiaLunes
	case time.Tuesday:
		return entity.DiaMartes
	case time.Wednesday:
		return entity.DiaMiercoles
	case time.Thursday:
		return entity.DiaJueves
	case time.Friday:
		return entity.DiaViernes
	case time.Saturday:
		return entity.DiaSabado
	default:
		return entity.DiaDomingo
	}
}

// DiaHabil indica si la fecha es lunes a viernes y no feriado.
// Determina qué valor fijo nocturno se usa en el cálculo.
func DiaHabil(fecha time.Time, esFeriado bool) bool {
	if esFeriado {
		return false
	}
	dia := fecha.Weekday()
	return dia != time.Saturday && dia != time.Sunday
}
