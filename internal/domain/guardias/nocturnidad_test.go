package guardias_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guslozua/bitacora-api/internal/domain/guardias"
)

func fecha(anio int, mes time.Month, dia, hora, minuto int) time.Time {
	return time.Date(anio, mes, dia, hora, minuto, 0, 0, time.UTC)
}

// TestMinutosNocturnos_CruzaMedianoche cubre el vector del motor: 22:00 a 01:00
// del día siguiente son 180 minutos, todos dentro de la franja nocturna
// (120 antes de medianoche + 60 de madrugada), sin doble conteo en el borde.
func TestMinutosNocturnos_CruzaMedianoche(t *testing.T) {
	ini := fecha(2025, time.January, 2, 22, 0)
	fin := fecha(2025, time.January, 3, 1, 0)
	assert.Equal(t, 180, guardias.MinutosNocturnos(ini, fin))
}

// TestMinutosNocturnos_Bordes verifica los límites exactos de la franja:
// 21:00 incluido, 06:00 excluido.
func TestMinutosNocturnos_Bordes(t *testing.T) {
	casos := []struct {
		nombre   string
		ini, fin time.Time
		esperado int
	}{
		{"justo antes de las 21", fecha(2025, time.March, 10, 20, 0), fecha(2025, time.March, 10, 21, 0), 0},
		{"primer minuto nocturno", fecha(2025, time.March, 10, 21, 0), fecha(2025, time.March, 10, 21, 1), 1},
		{"termina a las 06:00", fecha(2025, time.March, 10, 5, 0), fecha(2025, time.March, 10, 6, 0), 60},
		{"empieza a las 06:00", fecha(2025, time.March, 10, 6, 0), fecha(2025, time.March, 10, 7, 0), 0},
		{"mediodía sin nocturnos", fecha(2025, time.March, 10, 10, 0), fecha(2025, time.March, 10, 15, 0), 0},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, guardias.MinutosNocturnos(c.ini, c.fin))
		})
	}
}

// TestMinutosNocturnos_NocheCompleta cuenta una guardia de 21:00 a 06:00:
// exactamente los 540 minutos de la franja, ni uno más.
func TestMinutosNocturnos_NocheCompleta(t *testing.T) {
	ini := fecha(2025, time.June, 7, 21, 0)
	fin := fecha(2025, time.June, 8, 6, 0)
	assert.Equal(t, 540, guardias.MinutosNocturnos(ini, fin))
}

// TestMinutosNocturnos_VariosDias abarca más de un día calendario completo.
func TestMinutosNocturnos_VariosDias(t *testing.T) {
	// De lunes 20:00 a miércoles 08:00: dos franjas nocturnas completas (540 x 2).
	ini := fecha(2025, time.June, 9, 20, 0)
	fin := fecha(2025, time.June, 11, 8, 0)
	assert.Equal(t, 1080, guardias.MinutosNocturnos(ini, fin))
}

// TestMinutosNocturnos_RangoInvalido devuelve cero si fin no es posterior a inicio.
func TestMinutosNocturnos_RangoInvalido(t *testing.T) {
	ini := fecha(2025, time.June, 9, 22, 0)
	assert.Equal(t, 0, guardias.MinutosNocturnos(ini, ini))
	assert.Equal(t, 0, guardias.MinutosNocturnos(ini, ini.Add(-time.Hour)))
}
