package facturacion_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/facturacion"
)

func tarifaBase() *entity.Tarifa {
	return &entity.Tarifa{
		ID:                   "tarifa-1",
		Nombre:               "Base",
		ValorGuardiaPasiva:   decimal.NewFromInt(2000),
		ValorHoraActiva:      decimal.NewFromInt(350),
		ValorNocturnoHabil:   decimal.NewFromInt(200),
		ValorNocturnoNoHabil: decimal.NewFromInt(300),
		VigenciaDesde:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Activo:               true,
	}
}

func codigo(cod, tipo string, factor string) *entity.CodigoFacturacion {
	return &entity.CodigoFacturacion{
		ID:     "cod-" + cod,
		Codigo: cod,
		Tipo:   tipo,
		Factor: decimal.RequireFromString(factor),
		Activo: true,
	}
}

// TestCalcular_VectorGuardiaActivaNocturna es el vector de referencia del motor:
// incidente jueves 2025-01-02 de 22:00 a 01:00 (180 min).
//   - guardia activa: 3 hs iniciadas x 350 = 1050 (sin recargo, es jueves)
//   - nocturnidad: 180 min nocturnos -> 3 hs x 200 (valor hábil) = 600
func TestCalcular_VectorGuardiaActivaNocturna(t *testing.T) {
	p := facturacion.Parametros{
		Inicio:  time.Date(2025, time.January, 2, 22, 0, 0, 0, time.UTC),
		Fin:     time.Date(2025, time.January, 3, 1, 0, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{codigo("GA", entity.TipoGuardiaActiva, "1"), codigo("HN", entity.TipoHoraNocturna, "1")},
		Tarifa:  tarifaBase(),
	}

	d, err := facturacion.Calcular(p)
	require.NoError(t, err)
	require.Len(t, d.Lineas, 2)

	assert.Equal(t, "1050", d.TotalActiva.String(), "3 hs x 350")
	assert.Equal(t, "600", d.TotalNocturna.String(), "3 hs nocturnas x valor hábil 200")
	assert.Equal(t, "1650", d.TotalGeneral.String())
	assert.Empty(t, d.Advertencias)

	// Las líneas salen ordenadas por código: GA antes que HN.
	assert.Equal(t, "GA", d.Lineas[0].Codigo)
	assert.Equal(t, 180, d.Lineas[0].Minutos)
	assert.Equal(t, 3, d.Lineas[0].Horas)
	assert.Equal(t, "HN", d.Lineas[1].Codigo)
	assert.Equal(t, 180, d.Lineas[1].Minutos, "todos los minutos del incidente son nocturnos")
}

// TestCalcular_Determinista: dos corridas con la misma entrada producen una
// salida serializada idéntica byte a byte.
func TestCalcular_Determinista(t *testing.T) {
	p := facturacion.Parametros{
		Inicio: time.Date(2025, time.January, 11, 15, 0, 0, 0, time.UTC), // sábado tarde
		Fin:    time.Date(2025, time.January, 12, 2, 30, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{
			codigo("GP", entity.TipoGuardiaPasiva, "1"),
			codigo("GA", entity.TipoGuardiaActiva, "1"),
			codigo("HN", entity.TipoHoraNocturna, "1"),
			codigo("AD", entity.TipoAdicional, "0.5"),
		},
		Tarifa: tarifaBase(),
	}

	d1, err1 := facturacion.Calcular(p)
	d2, err2 := facturacion.Calcular(p)
	require.NoError(t, err1)
	require.NoError(t, err2)

	j1, _ := json.Marshal(d1)
	j2, _ := json.Marshal(d2)
	assert.Equal(t, string(j1), string(j2), "el cálculo debe ser determinista")
}

// TestCalcular_OrdenDeCodigosNoImporta: permutar la entrada no cambia el desglose.
func TestCalcular_OrdenDeCodigosNoImporta(t *testing.T) {
	cods := []*entity.CodigoFacturacion{
		codigo("GA", entity.TipoGuardiaActiva, "1"),
		codigo("HN", entity.TipoHoraNocturna, "1"),
		codigo("GP", entity.TipoGuardiaPasiva, "1"),
	}
	invertidos := []*entity.CodigoFacturacion{cods[2], cods[1], cods[0]}

	base := facturacion.Parametros{
		Inicio: time.Date(2025, time.January, 2, 22, 0, 0, 0, time.UTC),
		Fin:    time.Date(2025, time.January, 3, 1, 0, 0, 0, time.UTC),
		Tarifa: tarifaBase(),
	}
	pa, pb := base, base
	pa.Codigos = cods
	pb.Codigos = invertidos

	da, _ := facturacion.Calcular(pa)
	db, _ := facturacion.Calcular(pb)
	ja, _ := json.Marshal(da)
	jb, _ := json.Marshal(db)
	assert.Equal(t, string(ja), string(jb))
}

// TestCalcular_PasivaPorBloque valida el factor del bloque sábado tarde.
func TestCalcular_PasivaPorBloque(t *testing.T) {
	p := facturacion.Parametros{
		Inicio:  time.Date(2025, time.January, 11, 15, 0, 0, 0, time.UTC), // sábado 15:00
		Fin:     time.Date(2025, time.January, 11, 18, 0, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{codigo("GP", entity.TipoGuardiaPasiva, "1")},
		Tarifa:  tarifaBase(),
	}
	d, err := facturacion.Calcular(p)
	require.NoError(t, err)
	assert.Equal(t, "2750", d.TotalPasiva.String(), "2000 x 1.375")
	assert.Empty(t, d.Advertencias)
}

// TestCalcular_PasivaSinBloque_Advierte: un inicio fuera de todo bloque aplica
// el factor base pero deja la advertencia, nunca en silencio.
func TestCalcular_PasivaSinBloque_Advierte(t *testing.T) {
	p := facturacion.Parametros{
		Inicio:  time.Date(2025, time.January, 8, 10, 0, 0, 0, time.UTC), // miércoles 10:00
		Fin:     time.Date(2025, time.January, 8, 12, 0, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{codigo("GP", entity.TipoGuardiaPasiva, "1")},
		Tarifa:  tarifaBase(),
	}
	d, err := facturacion.Calcular(p)
	require.NoError(t, err)
	assert.Equal(t, "2000", d.TotalPasiva.String(), "factor base 1.0")
	require.Len(t, d.Advertencias, 1)
	assert.Contains(t, d.Advertencias[0], "fuera de todo bloque")
}

// TestCalcular_ActivaConRecargo: domingo aplica 1.5x sobre el valor hora.
func TestCalcular_ActivaConRecargo(t *testing.T) {
	p := facturacion.Parametros{
		Inicio:  time.Date(2025, time.January, 12, 9, 0, 0, 0, time.UTC), // domingo
		Fin:     time.Date(2025, time.January, 12, 10, 30, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{codigo("GA", entity.TipoGuardiaActiva, "1")},
		Tarifa:  tarifaBase(),
	}
	d, err := facturacion.Calcular(p)
	require.NoError(t, err)
	// 90 min -> 2 hs x (350 x 1.5) = 1050
	assert.Equal(t, "1050", d.TotalActiva.String())
}

// TestCalcular_NocturnaNoHabil usa el valor fijo de día no hábil.
func TestCalcular_NocturnaNoHabil(t *testing.T) {
	p := facturacion.Parametros{
		Inicio:  time.Date(2025, time.January, 11, 22, 0, 0, 0, time.UTC), // sábado
		Fin:     time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{codigo("HN", entity.TipoHoraNocturna, "1")},
		Tarifa:  tarifaBase(),
	}
	d, err := facturacion.Calcular(p)
	require.NoError(t, err)
	assert.Equal(t, "600", d.TotalNocturna.String(), "2 hs x 300 no hábil")
}

// TestCalcular_OtrosTipos: adicional usa valor hora x factor del código.
func TestCalcular_OtrosTipos(t *testing.T) {
	p := facturacion.Parametros{
		Inicio:  time.Date(2025, time.January, 2, 22, 0, 0, 0, time.UTC),
		Fin:     time.Date(2025, time.January, 2, 23, 30, 0, 0, time.UTC),
		Codigos: []*entity.CodigoFacturacion{codigo("AD", entity.TipoAdicional, "0.5")},
		Tarifa:  tarifaBase(),
	}
	d, err := facturacion.Calcular(p)
	require.NoError(t, err)
	// 90 min -> 2 hs x 350 x 0.5 = 350
	assert.Equal(t, "350", d.TotalOtros.String())
}

// ── Errores ───────────────────────────────────────────────────────────────────

func TestCalcular_ErrorRangoInvalido(t *testing.T) {
	p := facturacion.Parametros{
		Inicio: time.Date(2025, time.January, 2, 22, 0, 0, 0, time.UTC),
		Fin:    time.Date(2025, time.January, 2, 22, 0, 0, 0, time.UTC),
		Tarifa: tarifaBase(),
	}
	_, err := facturacion.Calcular(p)
	assert.True(t, errors.Is(err, domain.ErrValidacion))
}

func TestCalcular_ErrorSinTarifa(t *testing.T) {
	p := facturacion.Parametros{
		Inicio: time.Date(2025, time.January, 2, 22, 0, 0, 0, time.UTC),
		Fin:    time.Date(2025, time.January, 3, 1, 0, 0, 0, time.UTC),
	}
	_, err := facturacion.Calcular(p)
	assert.True(t, errors.Is(err, domain.ErrSinTarifaVigente),
		"sin tarifa vigente el cálculo debe abortar, nunca usar un valor por defecto")
}
