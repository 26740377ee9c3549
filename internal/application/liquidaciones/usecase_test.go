package liquidaciones_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guslozua/bitacora-api/internal/application/apptest"
	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/application/liquidaciones"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
)

type entorno struct {
	uc          *liquidaciones.UseCase
	guardiaRepo *apptest.FakeGuardiaRepo
	incRepo     *apptest.FakeIncidenteRepo
	liqRepo     *apptest.FakeLiquidacionRepo
}

func nuevoEntorno() *entorno {
	guardiaRepo := apptest.NewFakeGuardiaRepo()
	incRepo := apptest.NewFakeIncidenteRepo(guardiaRepo)
	liqRepo := apptest.NewFakeLiquidacionRepo()
	tx := &apptest.FakeTx{GuardiaRepo: guardiaRepo, IncidenteRepo: incRepo, LiquidacionRepo: liqRepo}
	return &entorno{
		uc:          liquidaciones.NewUseCase(tx, liqRepo, incRepo),
		guardiaRepo: guardiaRepo,
		incRepo:     incRepo,
		liqRepo:     liqRepo,
	}
}

// sembrar crea una guardia con un incidente en el estado dado y un código
// aplicado con el importe ya calculado.
func (e *entorno) sembrar(t *testing.T, guardiaID, usuario string, fecha time.Time, incidenteID, estado string, minutos int, importe int64) {
	t.Helper()
	if _, ok := e.guardiaRepo.Guardias[guardiaID]; !ok {
		require.NoError(t, e.guardiaRepo.Create(&entity.Guardia{ID: guardiaID, Fecha: fecha, Usuario: usuario}))
	}
	require.NoError(t, e.incRepo.Create(&entity.Incidente{
		ID:              incidenteID,
		GuardiaID:       guardiaID,
		Inicio:          fecha.Add(20 * time.Hour),
		Fin:             fecha.Add(20*time.Hour + time.Duration(minutos)*time.Minute),
		Estado:          estado,
		DuracionMinutos: minutos,
	}))
	require.NoError(t, e.incRepo.CreateCodigo(&entity.CodigoAplicado{
		ID:          "ca-" + incidenteID,
		IncidenteID: incidenteID,
		Codigo:      "GA",
		Minutos:     minutos,
		Importe:     decimal.NewFromInt(importe),
	}))
}

// TestGenerar_AgrupaYTransiciona: el lote toma solo los aprobados del período,
// suma minutos e importes, ordena por titular normalizado y pasa los
// incidentes incluidos a liquidado con su fila de historial.
func TestGenerar_AgrupaYTransiciona(t *testing.T) {
	e := nuevoEntorno()
	e.sembrar(t, "g1", "PÉREZ", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), "i1", entity.EstadoAprobado, 120, 1500)
	e.sembrar(t, "g2", "gómez", time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC), "i2", entity.EstadoAprobado, 60, 700)
	e.sembrar(t, "g3", "perez", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), "i3", entity.EstadoRegistrado, 90, 0)
	// Aprobado pero de otro mes: queda afuera.
	e.sembrar(t, "g4", "gómez", time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC), "i4", entity.EstadoAprobado, 30, 100)

	resp, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "2025-03", Actor: "liquidador"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03", resp.Periodo)
	assert.Equal(t, entity.LiquidacionPendiente, resp.Estado)
	assert.Equal(t, 180, resp.TotalMinutos)
	assert.Equal(t, "2200", resp.TotalImporte.String())

	// Con case folding "gómez" ordena antes que "PÉREZ".
	require.Len(t, resp.Detalles, 2)
	assert.Equal(t, "gómez", resp.Detalles[0].Usuario)
	assert.Equal(t, "i2", resp.Detalles[0].IncidenteID)
	assert.Equal(t, "PÉREZ", resp.Detalles[1].Usuario)
	assert.Equal(t, "1500", resp.Detalles[1].Importe.String())

	assert.Equal(t, entity.EstadoLiquidado, e.incRepo.Incidentes["i1"].Estado)
	assert.Equal(t, entity.EstadoLiquidado, e.incRepo.Incidentes["i2"].Estado)
	assert.Equal(t, entity.EstadoRegistrado, e.incRepo.Incidentes["i3"].Estado, "los no aprobados no se tocan")
	assert.Equal(t, entity.EstadoAprobado, e.incRepo.Incidentes["i4"].Estado, "otro período no se toca")

	hist, _ := e.incRepo.ListHistorial("i1")
	require.Len(t, hist, 1)
	assert.Equal(t, entity.EstadoAprobado, hist[0].EstadoAnterior)
	assert.Equal(t, entity.EstadoLiquidado, hist[0].EstadoNuevo)
	assert.Equal(t, "liquidador", hist[0].CambiadoPor)
}

// TestGenerar_RegeneraReemplazaDetalles: una segunda corrida del mismo período
// reusa la cabecera y reescribe los detalles con los aprobados actuales.
func TestGenerar_RegeneraReemplazaDetalles(t *testing.T) {
	e := nuevoEntorno()
	e.sembrar(t, "g1", "perez", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), "i1", entity.EstadoAprobado, 120, 1500)

	primera, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "2025-03", Actor: "liquidador"})
	require.NoError(t, err)
	require.Len(t, primera.Detalles, 1)

	// Se aprueba un incidente tardío y se regenera.
	e.sembrar(t, "g2", "gomez", time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), "i2", entity.EstadoAprobado, 60, 700)
	segunda, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "2025-03", Actor: "liquidador"})
	require.NoError(t, err)

	assert.Equal(t, primera.ID, segunda.ID, "misma cabecera de lote")
	require.Len(t, segunda.Detalles, 1, "solo el aprobado actual: i1 ya quedó liquidado")
	assert.Equal(t, "i2", segunda.Detalles[0].IncidenteID)
	assert.Equal(t, 60, segunda.TotalMinutos)
	assert.Equal(t, "700", segunda.TotalImporte.String())

	persistidos, _ := e.liqRepo.ListDetalles(segunda.ID)
	assert.Len(t, persistidos, 1)
}

func TestGenerar_PeriodoInvalido(t *testing.T) {
	e := nuevoEntorno()
	_, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "03-2025", Actor: "liquidador"})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

// TestGenerar_LoteCerrado: un período cerrado no se regenera.
func TestGenerar_LoteCerrado(t *testing.T) {
	e := nuevoEntorno()
	require.NoError(t, e.liqRepo.Create(&entity.Liquidacion{
		ID:      "l1",
		Periodo: "2025-03",
		Estado:  entity.LiquidacionCerrada,
	}))

	_, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "2025-03", Actor: "liquidador"})
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestCambiarEstado_CerradaEsTerminal(t *testing.T) {
	e := nuevoEntorno()
	e.sembrar(t, "g1", "perez", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), "i1", entity.EstadoAprobado, 60, 500)
	lote, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "2025-03", Actor: "liquidador"})
	require.NoError(t, err)

	paso, err := e.uc.CambiarEstado(lote.ID, dto.CambiarEstadoLiquidacionRequest{Estado: entity.LiquidacionProcesada})
	require.NoError(t, err)
	assert.Equal(t, entity.LiquidacionProcesada, paso.Estado)

	_, err = e.uc.CambiarEstado(lote.ID, dto.CambiarEstadoLiquidacionRequest{Estado: entity.LiquidacionCerrada})
	require.NoError(t, err)

	_, err = e.uc.CambiarEstado(lote.ID, dto.CambiarEstadoLiquidacionRequest{Estado: entity.LiquidacionPendiente})
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

// TestCambiarEstado_NoRetrocede: la progresión del lote es solo hacia adelante,
// un lote procesado no vuelve a pendiente.
func TestCambiarEstado_NoRetrocede(t *testing.T) {
	e := nuevoEntorno()
	e.sembrar(t, "g1", "perez", time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), "i1", entity.EstadoAprobado, 60, 500)
	lote, err := e.uc.Generar(context.Background(), dto.GenerarLiquidacionRequest{Periodo: "2025-03", Actor: "liquidador"})
	require.NoError(t, err)

	_, err = e.uc.CambiarEstado(lote.ID, dto.CambiarEstadoLiquidacionRequest{Estado: entity.LiquidacionProcesada})
	require.NoError(t, err)

	_, err = e.uc.CambiarEstado(lote.ID, dto.CambiarEstadoLiquidacionRequest{Estado: entity.LiquidacionPendiente})
	assert.ErrorIs(t, err, domain.ErrConflicto)

	_, err = e.uc.CambiarEstado(lote.ID, dto.CambiarEstadoLiquidacionRequest{Estado: entity.LiquidacionProcesada})
	assert.ErrorIs(t, err, domain.ErrConflicto, "repetir el estado actual tampoco es un avance")

	assert.Equal(t, entity.LiquidacionProcesada, e.liqRepo.Lotes[lote.ID].Estado)
}

func TestObtener_PeriodoInexistente(t *testing.T) {
	e := nuevoEntorno()
	resp, err := e.uc.Obtener("2025-12")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
