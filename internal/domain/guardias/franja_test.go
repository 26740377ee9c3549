package guardias_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/guardias"
)

// ── Franjas horarias ──────────────────────────────────────────────────────────

func TestEnFranja_SinCruce(t *testing.T) {
	ini := guardias.MinutoDelDia(9, 0)
	fin := guardias.MinutoDelDia(18, 0)

	assert.True(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(9, 0)), "inicio incluido")
	assert.True(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(12, 30)))
	assert.False(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(18, 0)), "fin excluido")
	assert.False(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(8, 59)))
}

// TestEnFranja_ConCruce cubre una franja que cruza medianoche (21:00 a 06:00).
func TestEnFranja_ConCruce(t *testing.T) {
	ini := guardias.MinutoDelDia(21, 0)
	fin := guardias.MinutoDelDia(6, 0)

	assert.True(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(23, 59)))
	assert.True(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(0, 0)))
	assert.True(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(5, 59)))
	assert.False(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(6, 0)))
	assert.False(t, guardias.EnFranja(ini, fin, guardias.MinutoDelDia(12, 0)))
}

func TestSolapaFranja_Casos(t *testing.T) {
	m := guardias.MinutoDelDia
	casos := []struct {
		nombre                     string
		iniInc, finInc, iniF, finF int
		esperado                   bool
	}{
		{"inicio dentro de la franja", m(22, 0), m(2, 0), m(21, 0), m(6, 0), true},
		{"fin dentro de la franja", m(19, 0), m(22, 0), m(21, 0), m(6, 0), true},
		{"incidente contiene la franja", m(8, 0), m(20, 0), m(12, 0), m(14, 0), true},
		{"incidente contiene franja con cruce", m(20, 0), m(7, 0), m(21, 0), m(6, 0), true},
		{"sin contacto", m(9, 0), m(12, 0), m(21, 0), m(6, 0), false},
		{"incidente con cruce, franja diurna ajena", m(23, 0), m(5, 0), m(9, 0), m(12, 0), false},
		{"toca solo el borde de fin de franja", m(6, 0), m(8, 0), m(21, 0), m(6, 0), false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, guardias.SolapaFranja(c.iniInc, c.finInc, c.iniF, c.finF))
		})
	}
}

// TestSolapaFranja_Idempotente: el mismo input produce siempre el mismo resultado.
func TestSolapaFranja_Idempotente(t *testing.T) {
	m := guardias.MinutoDelDia
	r1 := guardias.SolapaFranja(m(22, 0), m(2, 0), m(21, 0), m(6, 0))
	r2 := guardias.SolapaFranja(m(22, 0), m(2, 0), m(21, 0), m(6, 0))
	assert.Equal(t, r1, r2)
}

// ── Clasificación de día ──────────────────────────────────────────────────────

func TestClasificarDia_FeriadoTienePrecedencia(t *testing.T) {
	// 2025-05-01 es jueves; como feriado debe clasificar "F", no "J".
	primeroMayo := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, entity.DiaFeriado, guardias.ClasificarDia(primeroMayo, true))
	assert.Equal(t, entity.DiaJueves, guardias.ClasificarDia(primeroMayo, false))
}

func TestClasificarDia_Semana(t *testing.T) {
	// Lunes 2025-01-06 a domingo 2025-01-12.
	esperados := []string{
		entity.DiaLunes, entity.DiaMartes, entity.DiaMiercoles, entity.DiaJueves,
		entity.DiaViernes, entity.DiaSabado, entity.DiaDomingo,
	}
	for i, letra := range esperados {
		dia := time.Date(2025, time.January, 6+i, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, letra, guardias.ClasificarDia(dia, false), dia.Weekday().String())
	}
}

func TestDiaHabil(t *testing.T) {
	lunes := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	sabado := time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC)
	domingo := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)

	assert.True(t, guardias.DiaHabil(lunes, false))
	assert.False(t, guardias.DiaHabil(lunes, true), "feriado nunca es hábil")
	assert.False(t, guardias.DiaHabil(sabado, false))
	assert.False(t, guardias.DiaHabil(domingo, false))
}
