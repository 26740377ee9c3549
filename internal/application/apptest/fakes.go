// Package apptest provee repositorios en memoria para los tests de la capa de
// aplicación. Los fakes respetan el contrato de los puertos (GetByID devuelve
// nil, nil cuando no existe) pero no simulan transacciones reales: el runner
// de tx ejecuta la función directamente sobre los mismos repositorios.
package apptest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

// ── Feriados ────────────────────────────────────────────────────────────────

type FakeFeriadoRepo struct {
	Fechas map[string]bool // clave YYYY-MM-DD
}

var _ repository.FeriadoRepository = (*FakeFeriadoRepo)(nil)

func NewFakeFeriadoRepo(fechas ...string) *FakeFeriadoRepo {
	f := &FakeFeriadoRepo{Fechas: make(map[string]bool)}
	for _, fecha := range fechas {
		f.Fechas[fecha] = true
	}
	return f
}

func (f *FakeFeriadoRepo) Create(feriado *entity.Feriado) error {
	f.Fechas[feriado.Fecha.Format("2006-01-02")] = true
	return nil
}

func (f *FakeFeriadoRepo) EsFeriado(fecha time.Time) (bool, error) {
	return f.Fechas[fecha.Format("2006-01-02")], nil
}

func (f *FakeFeriadoRepo) ListByAnio(anio int) ([]*entity.Feriado, error) { return nil, nil }
func (f *FakeFeriadoRepo) Delete(id string) error                         { return nil }

// ── Códigos ─────────────────────────────────────────────────────────────────

type FakeCodigoRepo struct {
	Codigos []*entity.CodigoFacturacion
}

var _ repository.CodigoRepository = (*FakeCodigoRepo)(nil)

func (f *FakeCodigoRepo) Create(codigo *entity.CodigoFacturacion) error {
	f.Codigos = append(f.Codigos, codigo)
	return nil
}

func (f *FakeCodigoRepo) GetByID(id string) (*entity.CodigoFacturacion, error) {
	for _, c := range f.Codigos {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *FakeCodigoRepo) ListByCodigoModalidad(codigo, modalidad string) ([]*entity.CodigoFacturacion, error) {
	var out []*entity.CodigoFacturacion
	for _, c := range f.Codigos {
		if c.Codigo == codigo && c.Modalidad == modalidad {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeCodigoRepo) ListVigentes(fecha time.Time, modalidad string) ([]*entity.CodigoFacturacion, error) {
	var out []*entity.CodigoFacturacion
	for _, c := range f.Codigos {
		if c.Activo && c.Modalidad == modalidad && c.VigenteEn(fecha) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeCodigoRepo) List(limit, offset int) ([]*entity.CodigoFacturacion, error) {
	return f.Codigos, nil
}

func (f *FakeCodigoRepo) Update(codigo *entity.CodigoFacturacion) error {
	for i, c := range f.Codigos {
		if c.ID == codigo.ID {
			f.Codigos[i] = codigo
		}
	}
	return nil
}

func (f *FakeCodigoRepo) Desactivar(id string) error {
	for _, c := range f.Codigos {
		if c.ID == id {
			c.Activo = false
		}
	}
	return nil
}

// ── Tarifas ─────────────────────────────────────────────────────────────────

type FakeTarifaRepo struct {
	Tarifas []*entity.Tarifa
}

var _ repository.TarifaRepository = (*FakeTarifaRepo)(nil)

func (f *FakeTarifaRepo) Create(tarifa *entity.Tarifa) error {
	f.Tarifas = append(f.Tarifas, tarifa)
	return nil
}

func (f *FakeTarifaRepo) GetByID(id string) (*entity.Tarifa, error) {
	for _, t := range f.Tarifas {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *FakeTarifaRepo) ListVigentes(fecha time.Time) ([]*entity.Tarifa, error) {
	var out []*entity.Tarifa
	for _, t := range f.Tarifas {
		if t.Activo && t.VigenteEn(fecha) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *FakeTarifaRepo) ListByNombre(nombre string) ([]*entity.Tarifa, error) {
	var out []*entity.Tarifa
	for _, t := range f.Tarifas {
		if t.Nombre == nombre {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *FakeTarifaRepo) List(limit, offset int) ([]*entity.Tarifa, error) { return f.Tarifas, nil }

func (f *FakeTarifaRepo) Update(tarifa *entity.Tarifa) error {
	for i, t := range f.Tarifas {
		if t.ID == tarifa.ID {
			f.Tarifas[i] = tarifa
		}
	}
	return nil
}

func (f *FakeTarifaRepo) Desactivar(id string) error {
	for _, t := range f.Tarifas {
		if t.ID == id {
			t.Activo = false
		}
	}
	return nil
}

// ── Guardias ────────────────────────────────────────────────────────────────

type FakeGuardiaRepo struct {
	Guardias map[string]*entity.Guardia
}

var _ repository.GuardiaRepository = (*FakeGuardiaRepo)(nil)

func NewFakeGuardiaRepo() *FakeGuardiaRepo {
	return &FakeGuardiaRepo{Guardias: make(map[string]*entity.Guardia)}
}

func (f *FakeGuardiaRepo) Create(guardia *entity.Guardia) error {
	f.Guardias[guardia.ID] = guardia
	return nil
}

func (f *FakeGuardiaRepo) GetByID(id string) (*entity.Guardia, error) {
	return f.Guardias[id], nil
}

func (f *FakeGuardiaRepo) GetByFechaUsuario(fecha time.Time, usuario string) (*entity.Guardia, error) {
	for _, g := range f.Guardias {
		if mismoDia(g.Fecha, fecha) && g.Usuario == usuario {
			return g, nil
		}
	}
	return nil, nil
}

func (f *FakeGuardiaRepo) ListByRango(desde, hasta time.Time) ([]*entity.Guardia, error) {
	var out []*entity.Guardia
	for _, g := range f.Guardias {
		if !g.Fecha.Before(desde) && g.Fecha.Before(hasta) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *FakeGuardiaRepo) List(limit, offset int) ([]*entity.Guardia, error) {
	var out []*entity.Guardia
	for _, g := range f.Guardias {
		out = append(out, g)
	}
	return out, nil
}

func (f *FakeGuardiaRepo) Update(guardia *entity.Guardia) error {
	f.Guardias[guardia.ID] = guardia
	return nil
}

func (f *FakeGuardiaRepo) Delete(id string) error {
	delete(f.Guardias, id)
	return nil
}

// ── Incidentes ──────────────────────────────────────────────────────────────

type FakeIncidenteRepo struct {
	Incidentes map[string]*entity.Incidente
	Codigos    map[string][]*entity.CodigoAplicado // por incidente
	Historial  map[string][]*entity.HistorialEstado
	Guardias   *FakeGuardiaRepo // para resolver titular y fecha del lote
}

var _ repository.IncidenteRepository = (*FakeIncidenteRepo)(nil)

func NewFakeIncidenteRepo(guardias *FakeGuardiaRepo) *FakeIncidenteRepo {
	return &FakeIncidenteRepo{
		Incidentes: make(map[string]*entity.Incidente),
		Codigos:    make(map[string][]*entity.CodigoAplicado),
		Historial:  make(map[string][]*entity.HistorialEstado),
		Guardias:   guardias,
	}
}

func (f *FakeIncidenteRepo) Create(incidente *entity.Incidente) error {
	f.Incidentes[incidente.ID] = incidente
	return nil
}

func (f *FakeIncidenteRepo) GetByID(id string) (*entity.Incidente, error) {
	return f.Incidentes[id], nil
}

func (f *FakeIncidenteRepo) ListByGuardia(guardiaID string) ([]*entity.Incidente, error) {
	var out []*entity.Incidente
	for _, inc := range f.Incidentes {
		if inc.GuardiaID == guardiaID {
			out = append(out, inc)
		}
	}
	return out, nil
}

func (f *FakeIncidenteRepo) ListAprobadosEnRango(desde, hasta time.Time) ([]*entity.IncidenteGuardia, error) {
	var out []*entity.IncidenteGuardia
	for _, inc := range f.Incidentes {
		if inc.Estado != entity.EstadoAprobado {
			continue
		}
		g := f.Guardias.Guardias[inc.GuardiaID]
		if g == nil || g.Fecha.Before(desde) || !g.Fecha.Before(hasta) {
			continue
		}
		out = append(out, &entity.IncidenteGuardia{Incidente: inc, Usuario: g.Usuario, Fecha: g.Fecha})
	}
	return out, nil
}

func (f *FakeIncidenteRepo) Update(incidente *entity.Incidente) error {
	f.Incidentes[incidente.ID] = incidente
	return nil
}

func (f *FakeIncidenteRepo) Delete(id string) error {
	delete(f.Incidentes, id)
	return nil
}

func (f *FakeIncidenteRepo) DeleteByGuardia(guardiaID string) error {
	for id, inc := range f.Incidentes {
		if inc.GuardiaID == guardiaID {
			delete(f.Incidentes, id)
		}
	}
	return nil
}

func (f *FakeIncidenteRepo) CreateCodigo(codigo *entity.CodigoAplicado) error {
	f.Codigos[codigo.IncidenteID] = append(f.Codigos[codigo.IncidenteID], codigo)
	return nil
}

func (f *FakeIncidenteRepo) DeleteCodigosByIncidente(incidenteID string) error {
	delete(f.Codigos, incidenteID)
	return nil
}

func (f *FakeIncidenteRepo) ListCodigos(incidenteID string) ([]*entity.CodigoAplicado, error) {
	return f.Codigos[incidenteID], nil
}

func (f *FakeIncidenteRepo) UpdateCodigoImporte(codigoAplicadoID string, importe decimal.Decimal) error {
	for _, codigos := range f.Codigos {
		for _, ca := range codigos {
			if ca.ID == codigoAplicadoID {
				ca.Importe = importe
			}
		}
	}
	return nil
}

func (f *FakeIncidenteRepo) CreateHistorial(hist *entity.HistorialEstado) error {
	f.Historial[hist.IncidenteID] = append(f.Historial[hist.IncidenteID], hist)
	return nil
}

func (f *FakeIncidenteRepo) ListHistorial(incidenteID string) ([]*entity.HistorialEstado, error) {
	return f.Historial[incidenteID], nil
}

func (f *FakeIncidenteRepo) DeleteHistorialByIncidente(incidenteID string) error {
	delete(f.Historial, incidenteID)
	return nil
}

// ── Liquidaciones ───────────────────────────────────────────────────────────

type FakeLiquidacionRepo struct {
	Lotes    map[string]*entity.Liquidacion
	Detalles map[string][]*entity.LiquidacionDetalle // por lote
}

var _ repository.LiquidacionRepository = (*FakeLiquidacionRepo)(nil)

func NewFakeLiquidacionRepo() *FakeLiquidacionRepo {
	return &FakeLiquidacionRepo{
		Lotes:    make(map[string]*entity.Liquidacion),
		Detalles: make(map[string][]*entity.LiquidacionDetalle),
	}
}

func (f *FakeLiquidacionRepo) Create(liq *entity.Liquidacion) error {
	f.Lotes[liq.ID] = liq
	return nil
}

func (f *FakeLiquidacionRepo) GetByID(id string) (*entity.Liquidacion, error) {
	return f.Lotes[id], nil
}

func (f *FakeLiquidacionRepo) GetByPeriodo(periodo string) (*entity.Liquidacion, error) {
	for _, l := range f.Lotes {
		if l.Periodo == periodo {
			return l, nil
		}
	}
	return nil, nil
}

func (f *FakeLiquidacionRepo) List(limit, offset int) ([]*entity.Liquidacion, error) {
	var out []*entity.Liquidacion
	for _, l := range f.Lotes {
		out = append(out, l)
	}
	return out, nil
}

func (f *FakeLiquidacionRepo) Update(liq *entity.Liquidacion) error {
	f.Lotes[liq.ID] = liq
	return nil
}

func (f *FakeLiquidacionRepo) CreateDetalle(det *entity.LiquidacionDetalle) error {
	f.Detalles[det.LiquidacionID] = append(f.Detalles[det.LiquidacionID], det)
	return nil
}

func (f *FakeLiquidacionRepo) DeleteDetalles(liquidacionID string) error {
	delete(f.Detalles, liquidacionID)
	return nil
}

func (f *FakeLiquidacionRepo) ListDetalles(liquidacionID string) ([]*entity.LiquidacionDetalle, error) {
	return f.Detalles[liquidacionID], nil
}

// ── Runner de transacciones ─────────────────────────────────────────────────

// FakeTx ejecuta la función directamente, sin transacción real.
type FakeTx struct {
	GuardiaRepo     *FakeGuardiaRepo
	IncidenteRepo   *FakeIncidenteRepo
	LiquidacionRepo *FakeLiquidacionRepo
}

func (t *FakeTx) Run(ctx context.Context, fn func(incRepo repository.IncidenteRepository) error) error {
	return fn(t.IncidenteRepo)
}

func (t *FakeTx) RunGuardia(ctx context.Context, fn func(guardiaRepo repository.GuardiaRepository, incRepo repository.IncidenteRepository) error) error {
	return fn(t.GuardiaRepo, t.IncidenteRepo)
}

func (t *FakeTx) RunLiquidacion(ctx context.Context, fn func(incRepo repository.IncidenteRepository, liqRepo repository.LiquidacionRepository) error) error {
	return fn(t.IncidenteRepo, t.LiquidacionRepo)
}

func mismoDia(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
