package guardias

import (
	"fmt"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

// Tabla de transiciones permitidas del ciclo de vida de un incidente.
// liquidado es terminal; rechazado solo vuelve a registrado.
var transiciones = map[string][]string{
	entity.EstadoRegistrado: {entity.EstadoRevisado, entity.EstadoAprobado, entity.EstadoRechazado},
	entity.EstadoRevisado:   {entity.EstadoAprobado, entity.EstadoRechazado},
	entity.EstadoAprobado:   {entity.EstadoLiquidado},
	entity.EstadoRechazado:  {entity.EstadoRegistrado},
	entity.EstadoLiquidado:  {},
}

// EstadoValido indica si el estado pertenece al ciclo de vida.
func EstadoValido(estado string) bool {
	_, ok := transiciones[estado]
	return ok
}

// TransicionPermitida es una función pura de (estadoActual, estadoDestino).
func TransicionPermitida(desde, hacia string) bool {
	for _, permitido := range transiciones[desde] {
		if permitido == hacia {
			return true
		}
	}
	return false
}

// ValidarTransicion retorna ErrTransicionInvalida (envuelto con el detalle)
// si la transición no está permitida.
func ValidarTransicion(desde, hacia string) error {
	if !EstadoValido(hacia) {
		return fmt.Errorf("estado %q desconocido: %w", hacia, domain.ErrValidacion)
	}
	if !TransicionPermitida(desde, hacia) {
		return fmt.Errorf("de %q a %q: %w", desde, hacia, domain.ErrTransicionInvalida)
	}
	return nil
}
