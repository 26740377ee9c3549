package incidentes_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guslozua/bitacora-api/internal/application/apptest"
	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/incidentes"
	"github.com/guslozua/bitacora-api/internal/application/tarifas"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

type entorno struct {
	uc      *incidentes.UseCase
	incRepo *apptest.FakeIncidenteRepo
	codigos *apptest.FakeCodigoRepo
	tarifas *apptest.FakeTarifaRepo
}

// nuevoEntorno arma un caso de uso con una guardia del 2025-01-02 (jueves),
// un catálogo GA/GP/HN vigente y una tarifa base abierta.
func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()

	guardiaRepo := apptest.NewFakeGuardiaRepo()
	require.NoError(t, guardiaRepo.Create(&entity.Guardia{
		ID:      "g1",
		Fecha:   time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC),
		Usuario: "glozua",
	}))

	codigoRepo := &apptest.FakeCodigoRepo{}
	for _, c := range []struct{ id, cod, tipo string }{
		{"cod-GA", "GA", entity.TipoGuardiaActiva},
		{"cod-GP", "GP", entity.TipoGuardiaPasiva},
		{"cod-HN", "HN", entity.TipoHoraNocturna},
	} {
		require.NoError(t, codigoRepo.Create(&entity.CodigoFacturacion{
			ID:             c.id,
			Codigo:         c.cod,
			Tipo:           c.tipo,
			DiasAplicables: []string{"L", "M", "X", "J", "V", "S", "D", "F"},
			Factor:         decimal.NewFromInt(1),
			VigenciaDesde:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			Activo:         true,
			Modalidad:      entity.ModalidadDentroConvenio,
		}))
	}

	tarifaRepo := &apptest.FakeTarifaRepo{Tarifas: []*entity.Tarifa{{
		ID:                   "t1",
		Nombre:               "General",
		ValorGuardiaPasiva:   decimal.NewFromInt(2000),
		ValorHoraActiva:      decimal.NewFromInt(350),
		ValorNocturnoHabil:   decimal.NewFromInt(200),
		ValorNocturnoNoHabil: decimal.NewFromInt(300),
		VigenciaDesde:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Activo:               true,
	}}}

	incRepo := apptest.NewFakeIncidenteRepo(guardiaRepo)
	tx := &apptest.FakeTx{GuardiaRepo: guardiaRepo, IncidenteRepo: incRepo}
	feriados := apptest.NewFakeFeriadoRepo()

	return &entorno{
		uc:      incidentes.NewUseCase(tx, incRepo, guardiaRepo, codigoRepo, feriados, tarifas.NewUseCase(tarifaRepo)),
		incRepo: incRepo,
		codigos: codigoRepo,
		tarifas: tarifaRepo,
	}
}

// TestCrear_RegistraConHistorial: el alta queda en registrado, con la primera
// fila de historial y los minutos por código ya computados (los nocturnos solo
// cuentan la ventana 21:00 a 06:00).
func TestCrear_RegistraConHistorial(t *testing.T) {
	e := nuevoEntorno(t)

	resp, err := e.uc.Crear(context.Background(), "glozua", dto.CreateIncidenteRequest{
		GuardiaID:   "g1",
		Inicio:      "2025-01-02T20:00:00Z",
		Fin:         "2025-01-02T23:00:00Z",
		Descripcion: "caída de enlace",
		Codigos: []dto.CodigoAplicadoRequest{
			{CodigoID: "cod-GA"},
			{CodigoID: "cod-HN"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoRegistrado, resp.Estado)
	assert.Equal(t, 180, resp.DuracionMinutos)
	require.Len(t, resp.Codigos, 2)
	assert.Equal(t, 180, resp.Codigos[0].Minutos, "GA lleva la duración completa")
	assert.Equal(t, 120, resp.Codigos[1].Minutos, "HN solo cuenta de 21:00 a 23:00")

	hist, err := e.incRepo.ListHistorial(resp.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.EstadoRegistrado, hist[0].EstadoNuevo)
	assert.Equal(t, "glozua", hist[0].CambiadoPor)
}

func TestCrear_GuardiaInexistente(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), "glozua", dto.CreateIncidenteRequest{
		GuardiaID:   "no-existe",
		Inicio:      "2025-01-02T20:00:00Z",
		Fin:         "2025-01-02T21:00:00Z",
		Descripcion: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrear_FinAntesDeInicio(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), "glozua", dto.CreateIncidenteRequest{
		GuardiaID:   "g1",
		Inicio:      "2025-01-02T20:00:00Z",
		Fin:         "2025-01-02T20:00:00Z",
		Descripcion: "x",
	})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

// TestTransicionar_SaltoIlegal: registrado a liquidado sin pasar por revisado
// y aprobado se rechaza y no deja rastro en el historial.
func TestTransicionar_SaltoIlegal(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e)

	_, err := e.uc.Transicionar(context.Background(), resp.ID, dto.TransicionRequest{
		Estado: entity.EstadoLiquidado,
		Actor:  "auditor",
	})
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)

	hist, _ := e.incRepo.ListHistorial(resp.ID)
	assert.Len(t, hist, 1, "solo la fila del alta")
}

// TestTransicionar_CaminoCompleto recorre registrado, revisado, aprobado y
// liquidado, verificando el historial acumulado.
func TestTransicionar_CaminoCompleto(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e)

	for _, estado := range []string{entity.EstadoRevisado, entity.EstadoAprobado, entity.EstadoLiquidado} {
		resp2, err := e.uc.Transicionar(context.Background(), resp.ID, dto.TransicionRequest{Estado: estado, Actor: "auditor"})
		require.NoError(t, err)
		assert.Equal(t, estado, resp2.Estado)
	}

	hist, _ := e.incRepo.ListHistorial(resp.ID)
	require.Len(t, hist, 4)
	assert.Equal(t, entity.EstadoAprobado, hist[3].EstadoAnterior)
	assert.Equal(t, entity.EstadoLiquidado, hist[3].EstadoNuevo)
}

// TestActualizar_IncidenteLiquidado: liquidado congela el incidente.
func TestActualizar_IncidenteLiquidado(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e)
	e.incRepo.Incidentes[resp.ID].Estado = entity.EstadoLiquidado

	desc := "otra cosa"
	_, err := e.uc.Actualizar(context.Background(), resp.ID, dto.UpdateIncidenteRequest{Descripcion: &desc})
	assert.ErrorIs(t, err, domain.ErrIncidenteBloqueado)
}

// TestActualizar_ReemplazaCodigos: mandar códigos en la edición reemplaza el
// conjunto completo, no lo mezcla con el anterior.
func TestActualizar_ReemplazaCodigos(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e)

	actualizado, err := e.uc.Actualizar(context.Background(), resp.ID, dto.UpdateIncidenteRequest{
		Codigos: []dto.CodigoAplicadoRequest{{CodigoID: "cod-HN"}},
	})
	require.NoError(t, err)
	require.Len(t, actualizado.Codigos, 1)
	assert.Equal(t, "HN", actualizado.Codigos[0].Codigo)

	persistidos, _ := e.incRepo.ListCodigos(resp.ID)
	require.Len(t, persistidos, 1)
	assert.Equal(t, "HN", persistidos[0].Codigo)
}

// TestCalcularFacturacion_PersisteImportes: el recálculo de un incidente no
// liquidado deja los importes por código como snapshot.
func TestCalcularFacturacion_PersisteImportes(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e) // GA de 20:00 a 23:00, jueves

	desglose, err := e.uc.CalcularFacturacion(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "1050", desglose.TotalActiva.String(), "3 hs x 350 sin recargo en día hábil")

	persistidos, _ := e.incRepo.ListCodigos(resp.ID)
	require.Len(t, persistidos, 1)
	assert.Equal(t, "1050", persistidos[0].Importe.String())
}

// TestCalcularFacturacion_LiquidadoNoPersiste: un incidente liquidado se puede
// recalcular en memoria pero lo persistido no se toca.
func TestCalcularFacturacion_LiquidadoNoPersiste(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e)
	e.incRepo.Incidentes[resp.ID].Estado = entity.EstadoLiquidado

	desglose, err := e.uc.CalcularFacturacion(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "1050", desglose.TotalActiva.String())

	persistidos, _ := e.incRepo.ListCodigos(resp.ID)
	require.Len(t, persistidos, 1)
	assert.True(t, persistidos[0].Importe.IsZero(), "el snapshot no se pisa")
}

// TestCalcularFacturacion_MismoCodigoDistintaVersion: dos códigos aplicados
// que comparten la cadena del código pero apuntan a versiones distintas del
// nomenclador reciben cada uno su propio importe.
func TestCalcularFacturacion_MismoCodigoDistintaVersion(t *testing.T) {
	e := nuevoEntorno(t)
	require.NoError(t, e.codigos.Create(&entity.CodigoFacturacion{
		ID:             "cod-GA-fc",
		Codigo:         "GA",
		Tipo:           entity.TipoAdicional,
		DiasAplicables: []string{"L", "M", "X", "J", "V", "S", "D", "F"},
		Factor:         decimal.NewFromInt(2),
		VigenciaDesde:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Activo:         true,
		Modalidad:      entity.ModalidadFueraConvenio,
	}))

	resp, err := e.uc.Crear(context.Background(), "glozua", dto.CreateIncidenteRequest{
		GuardiaID:   "g1",
		Inicio:      "2025-01-02T20:00:00Z",
		Fin:         "2025-01-02T23:00:00Z",
		Descripcion: "caída de enlace",
		Codigos: []dto.CodigoAplicadoRequest{
			{CodigoID: "cod-GA"},
			{CodigoID: "cod-GA-fc"},
		},
	})
	require.NoError(t, err)

	_, err = e.uc.CalcularFacturacion(context.Background(), resp.ID)
	require.NoError(t, err)

	persistidos, _ := e.incRepo.ListCodigos(resp.ID)
	require.Len(t, persistidos, 2)
	importes := map[string]string{}
	for _, ca := range persistidos {
		importes[ca.CodigoID] = ca.Importe.String()
	}
	assert.Equal(t, "1050", importes["cod-GA"], "3 hs x 350")
	assert.Equal(t, "2100", importes["cod-GA-fc"], "3 hs x 350 x factor 2")
}

// TestCalcularFacturacion_SinTarifa: sin tarifa vigente el cálculo aborta.
func TestCalcularFacturacion_SinTarifa(t *testing.T) {
	e := nuevoEntorno(t)
	resp := crearIncidente(t, e)
	e.tarifas.Tarifas = nil

	_, err := e.uc.CalcularFacturacion(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrSinTarifaVigente)
}

func crearIncidente(t *testing.T, e *entorno) *dto.IncidenteResponse {
	t.Helper()
	resp, err := e.uc.Crear(context.Background(), "glozua", dto.CreateIncidenteRequest{
		GuardiaID:   "g1",
		Inicio:      "2025-01-02T20:00:00Z",
		Fin:         "2025-01-02T23:00:00Z",
		Descripcion: "caída de enlace",
		Codigos:     []dto.CodigoAplicadoRequest{{CodigoID: "cod-GA"}},
	})
	require.NoError(t, err)
	return resp
}
