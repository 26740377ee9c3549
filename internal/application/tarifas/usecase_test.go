package tarifas_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guslozua/bitacora-api/internal/application/apptest"
	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/tarifas"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

func dia(anio int, mes time.Month, d int) time.Time {
	return time.Date(anio, mes, d, 0, 0, 0, 0, time.UTC)
}

func tarifaVigente(id string, desde time.Time, hasta *time.Time, creada time.Time) *entity.Tarifa {
	return &entity.Tarifa{
		ID:                 id,
		Nombre:             "General",
		ValorGuardiaPasiva: decimal.NewFromInt(2000),
		ValorHoraActiva:    decimal.NewFromInt(350),
		VigenciaDesde:      desde,
		VigenciaHasta:      hasta,
		Activo:             true,
		CreatedAt:          creada,
	}
}

// TestResolver_GanaLaVigenciaMasReciente: entre dos tarifas que cubren la
// fecha gana la de vigencia_desde más nueva, sin importar el orden de lectura.
func TestResolver_GanaLaVigenciaMasReciente(t *testing.T) {
	repo := &apptest.FakeTarifaRepo{Tarifas: []*entity.Tarifa{
		tarifaVigente("vieja", dia(2025, time.January, 1), nil, dia(2025, time.January, 1)),
		tarifaVigente("nueva", dia(2025, time.June, 1), nil, dia(2025, time.May, 20)),
	}}
	uc := tarifas.NewUseCase(repo)

	elegida, err := uc.Resolver(dia(2025, time.June, 15))
	require.NoError(t, err)
	assert.Equal(t, "nueva", elegida.ID)

	// Antes del 1 de junio la nueva todavía no rige.
	elegida, err = uc.Resolver(dia(2025, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, "vieja", elegida.ID)
}

// TestResolver_EmpateDesdeDesempataPorCreacion: mismo vigencia_desde, gana la
// creada más recientemente.
func TestResolver_EmpateDesdeDesempataPorCreacion(t *testing.T) {
	desde := dia(2025, time.January, 1)
	repo := &apptest.FakeTarifaRepo{Tarifas: []*entity.Tarifa{
		tarifaVigente("primera", desde, nil, dia(2024, time.December, 1)),
		tarifaVigente("segunda", desde, nil, dia(2024, time.December, 15)),
	}}
	uc := tarifas.NewUseCase(repo)

	elegida, err := uc.Resolver(dia(2025, time.February, 1))
	require.NoError(t, err)
	assert.Equal(t, "segunda", elegida.ID)
}

// TestResolver_SinTarifaVigente: sin cobertura el cálculo corta con error,
// nunca hay tarifa por defecto.
func TestResolver_SinTarifaVigente(t *testing.T) {
	hasta := dia(2025, time.May, 31)
	repo := &apptest.FakeTarifaRepo{Tarifas: []*entity.Tarifa{
		tarifaVigente("cerrada", dia(2025, time.January, 1), &hasta, dia(2025, time.January, 1)),
	}}
	uc := tarifas.NewUseCase(repo)

	_, err := uc.Resolver(dia(2025, time.July, 1))
	assert.ErrorIs(t, err, domain.ErrSinTarifaVigente)
}

// TestCrear_RechazaSolapamiento: una tarifa abierta del mismo nombre bloquea
// cualquier alta posterior que la pise.
func TestCrear_RechazaSolapamiento(t *testing.T) {
	repo := &apptest.FakeTarifaRepo{Tarifas: []*entity.Tarifa{
		tarifaVigente("abierta", dia(2025, time.January, 1), nil, dia(2025, time.January, 1)),
	}}
	uc := tarifas.NewUseCase(repo)

	_, err := uc.Crear(dto.CreateTarifaRequest{
		Nombre:        "General",
		VigenciaDesde: "2025-06-01",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSolapamientoVigencia)
	assert.Contains(t, err.Error(), "abierta", "el error identifica la tarifa en conflicto")
}

// TestCrear_PermiteVigenciaContigua: cerrar la anterior el día previo habilita
// el alta de la siguiente.
func TestCrear_PermiteVigenciaContigua(t *testing.T) {
	hasta := dia(2025, time.May, 31)
	repo := &apptest.FakeTarifaRepo{Tarifas: []*entity.Tarifa{
		tarifaVigente("cerrada", dia(2025, time.January, 1), &hasta, dia(2025, time.January, 1)),
	}}
	uc := tarifas.NewUseCase(repo)

	resp, err := uc.Crear(dto.CreateTarifaRequest{
		Nombre:             "General",
		ValorGuardiaPasiva: decimal.NewFromInt(2500),
		VigenciaDesde:      "2025-06-01",
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Equal(t, "2025-06-01", resp.VigenciaDesde)
	assert.Len(t, repo.Tarifas, 2)
}

func TestCrear_HastaAnteriorADesde(t *testing.T) {
	uc := tarifas.NewUseCase(&apptest.FakeTarifaRepo{})
	hasta := "2025-01-01"
	_, err := uc.Crear(dto.CreateTarifaRequest{
		Nombre:        "General",
		VigenciaDesde: "2025-06-01",
		VigenciaHasta: &hasta,
	})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestDesactivar_NoExiste(t *testing.T) {
	uc := tarifas.NewUseCase(&apptest.FakeTarifaRepo{})
	err := uc.Desactivar("no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
