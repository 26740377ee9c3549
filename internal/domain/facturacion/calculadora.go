package facturacion

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/guardias"
)

// recargoNoLaborable multiplica el valor hora activa cuando el incidente
// inicia sábado por la tarde, domingo o feriado.
var recargoNoLaborable = decimal.RequireFromString("1.5")

// Parametros es la entrada del cálculo: el intervalo del incidente, los
// códigos del nomenclador aplicados, la tarifa resuelta para la fecha y si
// la fecha es feriado. El cálculo es una función pura de estos valores.
type Parametros struct {
	Inicio    time.Time
	Fin       time.Time
	EsFeriado bool
	Codigos   []*entity.CodigoFacturacion
	Tarifa    *entity.Tarifa
}

// Linea es un renglón del desglose con su justificación legible. CodigoID
// identifica la versión exacta del nomenclador: dos versiones de un mismo
// código comparten la cadena Codigo pero nunca el ID.
type Linea struct {
	CodigoID string          `json:"codigo_id"`
	Codigo   string          `json:"codigo"`
	Tipo     string          `json:"tipo"`
	Minutos  int             `json:"minutos"`
	Horas    int             `json:"horas"`
	Importe  decimal.Decimal `json:"importe"`
	Detalle  string          `json:"detalle"`
}

// Desglose es el resultado estructurado del cálculo.
type Desglose struct {
	TotalPasiva   decimal.Decimal `json:"total_pasiva"`
	TotalActiva   decimal.Decimal `json:"total_activa"`
	TotalNocturna decimal.Decimal `json:"total_nocturna"`
	TotalOtros    decimal.Decimal `json:"total_otros"`
	TotalGeneral  decimal.Decimal `json:"total_general"`
	Lineas        []Linea         `json:"lineas"`
	Advertencias  []string        `json:"advertencias,omitempty"`
}

// Calcular computa el desglose de facturación de un incidente. Llamado dos
// veces con la misma entrada produce exactamente el mismo resultado: los
// códigos se ordenan por código antes de liquidar cada renglón.
func Calcular(p Parametros) (*Desglose, error) {
	if !p.Fin.After(p.Inicio) {
		return nil, fmt.Errorf("el fin debe ser posterior al inicio: %w", domain.ErrValidacion)
	}
	if p.Tarifa == nil {
		return nil, domain.ErrSinTarifaVigente
	}

	duracion := int(p.Fin.Sub(p.Inicio) / time.Minute)
	horas := horasFacturables(duracion)
	habil := guardias.DiaHabil(p.Inicio, p.EsFeriado)

	codigos := make([]*entity.CodigoFacturacion, len(p.Codigos))
	copy(codigos, p.Codigos)
	sort.Slice(codigos, func(i, j int) bool { return codigos[i].Codigo < codigos[j].Codigo })

	d := &Desglose{
		TotalPasiva:   decimal.Zero,
		TotalActiva:   decimal.Zero,
		TotalNocturna: decimal.Zero,
		TotalOtros:    decimal.Zero,
		TotalGeneral:  decimal.Zero,
	}

	for _, cod := range codigos {
		var linea Linea
		switch cod.Tipo {
		case entity.TipoGuardiaPasiva:
			linea = calcularPasiva(p, cod, duracion, d)
		case entity.TipoGuardiaActiva:
			linea = calcularActiva(p, cod, duracion, horas)
			d.TotalActiva = d.TotalActiva.Add(linea.Importe)
		case entity.TipoHoraNocturna:
			linea = calcularNocturna(p, cod, habil)
			d.TotalNocturna = d.TotalNocturna.Add(linea.Importe)
		default:
			// feriado, fin_semana, adicional: hora activa por el factor del código
			importe := decimal.NewFromInt(int64(horas)).Mul(p.Tarifa.ValorHoraActiva).Mul(cod.Factor)
			linea = Linea{
				CodigoID: cod.ID,
				Codigo:   cod.Codigo,
				Tipo:     cod.Tipo,
				Minutos:  duracion,
				Horas:    horas,
				Importe:  importe,
				Detalle:  fmt.Sprintf("%d hs x %s x factor %s", horas, p.Tarifa.ValorHoraActiva.StringFixed(2), cod.Factor.String()),
			}
			d.TotalOtros = d.TotalOtros.Add(importe)
		}
		d.Lineas = append(d.Lineas, linea)
	}

	d.TotalGeneral = d.TotalPasiva.Add(d.TotalActiva).Add(d.TotalNocturna).Add(d.TotalOtros)
	return d, nil
}

// calcularPasiva liquida el bloque de guardia pasiva. Si el inicio no cae en
// ningún bloque definido se aplica el factor base y se deja una advertencia:
// el comportamiento silencioso del sistema anterior facturaba mal esos casos.
func calcularPasiva(p Parametros, cod *entity.CodigoFacturacion, duracion int, d *Desglose) Linea {
	turno, clasificado := guardias.ClasificarTurno(p.Inicio, p.EsFeriado)
	importe := p.Tarifa.ValorGuardiaPasiva.Mul(turno.Factor)
	if !clasificado {
		d.Advertencias = append(d.Advertencias, fmt.Sprintf(
			"codigo %s: inicio %s fuera de todo bloque de turno, se aplica factor base 1.0",
			cod.Codigo, p.Inicio.Format("15:04")))
	}
	d.TotalPasiva = d.TotalPasiva.Add(importe)
	return Linea{
		CodigoID: cod.ID,
		Codigo:   cod.Codigo,
		Tipo:     cod.Tipo,
		Minutos:  duracion,
		Importe:  importe,
		Detalle:  fmt.Sprintf("bloque %s: %s x factor %s", turno.Nombre, p.Tarifa.ValorGuardiaPasiva.StringFixed(2), turno.Factor.String()),
	}
}

// calcularActiva liquida la guardia activa: hora iniciada se factura completa,
// con recargo de día no laborable sobre el valor hora cuando corresponde.
func calcularActiva(p Parametros, cod *entity.CodigoFacturacion, duracion, horas int) Linea {
	valorHora := p.Tarifa.ValorHoraActiva
	detalle := fmt.Sprintf("%d min -> %d hs x %s", duracion, horas, valorHora.StringFixed(2))
	if guardias.RecargoActiva(p.Inicio, p.EsFeriado) {
		valorHora = valorHora.Mul(recargoNoLaborable)
		detalle = fmt.Sprintf("%d min -> %d hs x %s (recargo no laborable 1.5)", duracion, horas, valorHora.StringFixed(2))
	}
	return Linea{
		CodigoID: cod.ID,
		Codigo:   cod.Codigo,
		Tipo:     cod.Tipo,
		Minutos:  duracion,
		Horas:    horas,
		Importe:  decimal.NewFromInt(int64(horas)).Mul(valorHora),
		Detalle:  detalle,
	}
}

// calcularNocturna suma los minutos dentro de [21:00, 06:00), los redondea a
// horas completas y aplica el valor fijo según día hábil / no hábil.
func calcularNocturna(p Parametros, cod *entity.CodigoFacturacion, habil bool) Linea {
	minutos := guardias.MinutosNocturnos(p.Inicio, p.Fin)
	horas := horasFacturables(minutos)
	valor := p.Tarifa.ValorNocturnoHabil
	etiqueta := "hábil"
	if !habil {
		valor = p.Tarifa.ValorNocturnoNoHabil
		etiqueta = "no hábil"
	}
	return Linea{
		CodigoID: cod.ID,
		Codigo:   cod.Codigo,
		Tipo:     cod.Tipo,
		Minutos:  minutos,
		Horas:    horas,
		Importe:  decimal.NewFromInt(int64(horas)).Mul(valor),
		Detalle:  fmt.Sprintf("%d min nocturnos -> %d hs x %s (día %s)", minutos, horas, valor.StringFixed(2), etiqueta),
	}
}

// horasFacturables redondea minutos hacia arriba a horas completas:
// toda hora iniciada se factura entera.
func horasFacturables(minutos int) int {
	if minutos <= 0 {
		return 0
	}
	return (minutos + 59) / 60
}
