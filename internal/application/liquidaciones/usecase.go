package liquidaciones

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/guardias"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

const (
	formatoPeriodo = "2006-01"
	formatoFecha   = "2006-01-02"
)

// plegador normaliza titulares para agrupar y ordenar: NFC + case folding,
// de modo que "PÉREZ" y "pérez" caigan en el mismo grupo.
var plegador = cases.Fold()

// UseCase arma el lote mensual de liquidación: toma los incidentes aprobados
// del período, los vuelca como detalles del lote y los pasa a liquidado.
type UseCase struct {
	txRunner TxRunner
	liqRepo  repository.LiquidacionRepository
	incRepo  repository.IncidenteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, liqRepo repository.LiquidacionRepository, incRepo repository.IncidenteRepository) *UseCase {
	return &UseCase{txRunner: txRunner, liqRepo: liqRepo, incRepo: incRepo}
}

// Generar crea (o regenera) el lote del período YYYY-MM. Selecciona los
// incidentes en estado aprobado cuya guardia cae dentro del período, arma un
// detalle por incidente con el titular y la fecha de la guardia, y en una sola
// transacción: reescribe cabecera y detalles, y transiciona los incidentes
// incluidos de aprobado a liquidado con su fila de historial.
//
// Regenerar un período no toca los incidentes ya liquidados en corridas
// anteriores: sus detalles previos se reemplazan por el conjunto aprobado
// actual, por eso el corte operativo es aprobar todo antes de generar.
func (uc *UseCase) Generar(ctx context.Context, in dto.GenerarLiquidacionRequest) (*dto.LiquidacionResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	desde, err := time.Parse(formatoPeriodo, in.Periodo)
	if err != nil {
		return nil, fmt.Errorf("periodo %q inválido, se espera YYYY-MM: %w", in.Periodo, domain.ErrValidacion)
	}
	hasta := desde.AddDate(0, 1, 0) // exclusivo

	existente, err := uc.liqRepo.GetByPeriodo(in.Periodo)
	if err != nil {
		return nil, err
	}
	if existente != nil && existente.Estado == entity.LiquidacionCerrada {
		return nil, fmt.Errorf("lote %s cerrado: %w", in.Periodo, domain.ErrConflicto)
	}

	var lote *entity.Liquidacion
	err = uc.txRunner.RunLiquidacion(ctx, func(incRepo repository.IncidenteRepository, liqRepo repository.LiquidacionRepository) error {
		aprobados, err := incRepo.ListAprobadosEnRango(desde, hasta)
		if err != nil {
			return err
		}

		detalles, totalMin, totalImp, err := uc.armarDetalles(incRepo, aprobados)
		if err != nil {
			return err
		}

		now := time.Now()
		if existente != nil {
			lote = existente
			if err := liqRepo.DeleteDetalles(lote.ID); err != nil {
				return err
			}
			lote.Estado = entity.LiquidacionPendiente
			lote.FechaGeneracion = now
			lote.TotalMinutos = totalMin
			lote.TotalImporte = totalImp
			lote.UpdatedAt = now
			if err := liqRepo.Update(lote); err != nil {
				return err
			}
		} else {
			lote = &entity.Liquidacion{
				ID:              uuid.New().String(),
				Periodo:         in.Periodo,
				Estado:          entity.LiquidacionPendiente,
				FechaGeneracion: now,
				TotalMinutos:    totalMin,
				TotalImporte:    totalImp,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := liqRepo.Create(lote); err != nil {
				return err
			}
		}

		for _, det := range detalles {
			det.LiquidacionID = lote.ID
			if err := liqRepo.CreateDetalle(det); err != nil {
				return err
			}
		}
		lote.Detalles = detalles

		for _, ig := range aprobados {
			inc := ig.Incidente
			if err := guardias.ValidarTransicion(inc.Estado, entity.EstadoLiquidado); err != nil {
				return err
			}
			anterior := inc.Estado
			inc.Estado = entity.EstadoLiquidado
			inc.UpdatedAt = now
			if err := incRepo.Update(inc); err != nil {
				return err
			}
			if err := incRepo.CreateHistorial(&entity.HistorialEstado{
				ID:             uuid.New().String(),
				IncidenteID:    inc.ID,
				EstadoAnterior: anterior,
				EstadoNuevo:    entity.EstadoLiquidado,
				CambiadoPor:    in.Actor,
				Observaciones:  fmt.Sprintf("incluido en liquidación %s", in.Periodo),
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(lote), nil
}

// armarDetalles construye una fila por incidente aprobado, con el importe como
// suma de los importes ya calculados de sus códigos aplicados, y las deja
// ordenadas por titular normalizado, fecha e incidente para que el lote sea
// reproducible sin importar el orden de lectura.
func (uc *UseCase) armarDetalles(incRepo repository.IncidenteRepository, aprobados []*entity.IncidenteGuardia) ([]*entity.LiquidacionDetalle, int, decimal.Decimal, error) {
	detalles := make([]*entity.LiquidacionDetalle, 0, len(aprobados))
	totalMin := 0
	totalImp := decimal.Zero
	for _, ig := range aprobados {
		inc := ig.Incidente
		if inc.Codigos == nil {
			codigos, err := incRepo.ListCodigos(inc.ID)
			if err != nil {
				return nil, 0, decimal.Zero, err
			}
			inc.Codigos = codigos
		}
		importe := decimal.Zero
		for _, ca := range inc.Codigos {
			importe = importe.Add(ca.Importe)
		}
		detalles = append(detalles, &entity.LiquidacionDetalle{
			ID:          uuid.New().String(),
			IncidenteID: inc.ID,
			GuardiaID:   inc.GuardiaID,
			Usuario:     ig.Usuario,
			Fecha:       ig.Fecha,
			Minutos:     inc.DuracionMinutos,
			Importe:     importe,
		})
		totalMin += inc.DuracionMinutos
		totalImp = totalImp.Add(importe)
	}
	sort.Slice(detalles, func(i, j int) bool {
		a, b := detalles[i], detalles[j]
		ta, tb := normalizarTitular(a.Usuario), normalizarTitular(b.Usuario)
		if ta != tb {
			return ta < tb
		}
		if !a.Fecha.Equal(b.Fecha) {
			return a.Fecha.Before(b.Fecha)
		}
		return a.IncidenteID < b.IncidenteID
	})
	return detalles, totalMin, totalImp, nil
}

// ordenEstadoLote define la progresión pendiente -> procesada -> cerrada.
var ordenEstadoLote = map[string]int{
	entity.LiquidacionPendiente: 0,
	entity.LiquidacionProcesada: 1,
	entity.LiquidacionCerrada:   2,
}

// CambiarEstado avanza el estado simple del lote. La progresión es sólo hacia
// adelante: un lote procesado no vuelve a pendiente y uno cerrado no admite
// más cambios.
func (uc *UseCase) CambiarEstado(id string, in dto.CambiarEstadoLiquidacionRequest) (*dto.LiquidacionResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	lote, err := uc.liqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	if lote.Estado == entity.LiquidacionCerrada {
		return nil, fmt.Errorf("lote %s cerrado: %w", lote.Periodo, domain.ErrConflicto)
	}
	if ordenEstadoLote[in.Estado] <= ordenEstadoLote[lote.Estado] {
		return nil, fmt.Errorf("lote %s en estado %s no puede pasar a %s: %w",
			lote.Periodo, lote.Estado, in.Estado, domain.ErrConflicto)
	}
	lote.Estado = in.Estado
	lote.UpdatedAt = time.Now()
	if err := uc.liqRepo.Update(lote); err != nil {
		return nil, err
	}
	return toResponse(lote), nil
}

// Obtener devuelve el lote de un período con sus detalles.
func (uc *UseCase) Obtener(periodo string) (*dto.LiquidacionResponse, error) {
	lote, err := uc.liqRepo.GetByPeriodo(periodo)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, nil
	}
	return uc.conDetalles(lote)
}

// GetByID devuelve el lote por id con sus detalles.
func (uc *UseCase) GetByID(id string) (*dto.LiquidacionResponse, error) {
	lote, err := uc.liqRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, nil
	}
	return uc.conDetalles(lote)
}

// Listar devuelve los lotes paginados, sin detalles.
func (uc *UseCase) Listar(limit, offset int) ([]*dto.LiquidacionResponse, error) {
	lotes, err := uc.liqRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LiquidacionResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, toResponse(l))
	}
	return out, nil
}

func (uc *UseCase) conDetalles(lote *entity.Liquidacion) (*dto.LiquidacionResponse, error) {
	if lote.Detalles == nil {
		detalles, err := uc.liqRepo.ListDetalles(lote.ID)
		if err != nil {
			return nil, err
		}
		lote.Detalles = detalles
	}
	return toResponse(lote), nil
}

func normalizarTitular(s string) string {
	return plegador.String(norm.NFC.String(strings.TrimSpace(s)))
}

func toResponse(l *entity.Liquidacion) *dto.LiquidacionResponse {
	resp := &dto.LiquidacionResponse{
		ID:              l.ID,
		Periodo:         l.Periodo,
		Estado:          l.Estado,
		FechaGeneracion: l.FechaGeneracion.Format(time.RFC3339),
		TotalMinutos:    l.TotalMinutos,
		TotalImporte:    l.TotalImporte,
		Detalles:        make([]dto.LiquidacionDetalleResponse, 0, len(l.Detalles)),
	}
	for _, d := range l.Detalles {
		resp.Detalles = append(resp.Detalles, dto.LiquidacionDetalleResponse{
			IncidenteID: d.IncidenteID,
			GuardiaID:   d.GuardiaID,
			Usuario:     d.Usuario,
			Fecha:       d.Fecha.Format(formatoFecha),
			Minutos:     d.Minutos,
			Importe:     d.Importe,
		})
	}
	return resp
}
