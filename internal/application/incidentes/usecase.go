package incidentes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/guardias"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

// UseCase administra el ciclo de vida completo de un incidente: alta, edición
// con reemplazo total de códigos, transiciones de estado y recálculo.
type UseCase struct {
	txRunner    TxRunner
	incRepo     repository.IncidenteRepository
	guardiaRepo repository.GuardiaRepository
	codigoRepo  repository.CodigoRepository
	feriados    repository.FeriadoRepository
	tarifas     TarifaResolver
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	incRepo repository.IncidenteRepository,
	guardiaRepo repository.GuardiaRepository,
	codigoRepo repository.CodigoRepository,
	feriados repository.FeriadoRepository,
	tarifas TarifaResolver,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		incRepo:     incRepo,
		guardiaRepo: guardiaRepo,
		codigoRepo:  codigoRepo,
		feriados:    feriados,
		tarifas:     tarifas,
	}
}

// Crear registra un incidente dentro de una guardia. Valida fin > inicio y que
// cada código aplicado referencie un código activo del nomenclador. El
// incidente, sus códigos y la primera fila de historial se insertan en una
// sola transacción.
func (uc *UseCase) Crear(ctx context.Context, registradoPor string, in dto.CreateIncidenteRequest) (*dto.IncidenteResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	inicio, fin, err := parseRango(in.Inicio, in.Fin)
	if err != nil {
		return nil, err
	}

	guardia, err := uc.guardiaRepo.GetByID(in.GuardiaID)
	if err != nil {
		return nil, err
	}
	if guardia == nil {
		return nil, fmt.Errorf("guardia %s: %w", in.GuardiaID, domain.ErrNotFound)
	}

	aplicados, err := uc.armarCodigos(in.Codigos, inicio, fin)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	incidente := &entity.Incidente{
		ID:              uuid.New().String(),
		GuardiaID:       in.GuardiaID,
		Inicio:          inicio,
		Fin:             fin,
		Descripcion:     in.Descripcion,
		Estado:          entity.EstadoRegistrado,
		RegistradoPor:   registradoPor,
		DuracionMinutos: int(fin.Sub(inicio) / time.Minute),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, ca := range aplicados {
		ca.IncidenteID = incidente.ID
	}
	incidente.Codigos = aplicados

	err = uc.txRunner.Run(ctx, func(incRepo repository.IncidenteRepository) error {
		if err := incRepo.Create(incidente); err != nil {
			return err
		}
		for _, ca := range aplicados {
			if err := incRepo.CreateCodigo(ca); err != nil {
				return err
			}
		}
		return incRepo.CreateHistorial(&entity.HistorialEstado{
			ID:          uuid.New().String(),
			IncidenteID: incidente.ID,
			EstadoNuevo: entity.EstadoRegistrado,
			CambiadoPor: registradoPor,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toResponse(incidente), nil
}

// Actualizar edita un incidente no liquidado. El conjunto de códigos aplicados
// se reemplaza completo (borrar y reinsertar) dentro de una transacción: un
// lector concurrente nunca observa un conjunto a medio aplicar.
func (uc *UseCase) Actualizar(ctx context.Context, id string, in dto.UpdateIncidenteRequest) (*dto.IncidenteResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	incidente, err := uc.incRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if incidente == nil {
		return nil, domain.ErrNotFound
	}
	if incidente.Bloqueado() {
		return nil, domain.ErrIncidenteBloqueado
	}

	if in.Inicio != nil {
		t, err := time.Parse(time.RFC3339, *in.Inicio)
		if err != nil {
			return nil, fmt.Errorf("inicio inválido: %w", domain.ErrValidacion)
		}
		incidente.Inicio = t
	}
	if in.Fin != nil {
		t, err := time.Parse(time.RFC3339, *in.Fin)
		if err != nil {
			return nil, fmt.Errorf("fin inválido: %w", domain.ErrValidacion)
		}
		incidente.Fin = t
	}
	if !incidente.Fin.After(incidente.Inicio) {
		return nil, fmt.Errorf("el fin debe ser posterior al inicio: %w", domain.ErrValidacion)
	}
	if in.Descripcion != nil {
		incidente.Descripcion = *in.Descripcion
	}
	if in.Observaciones != nil {
		incidente.Observaciones = *in.Observaciones
	}
	incidente.DuracionMinutos = int(incidente.Fin.Sub(incidente.Inicio) / time.Minute)
	incidente.UpdatedAt = time.Now()

	reemplazarCodigos := in.Codigos != nil
	var aplicados []*entity.CodigoAplicado
	if reemplazarCodigos {
		aplicados, err = uc.armarCodigos(in.Codigos, incidente.Inicio, incidente.Fin)
		if err != nil {
			return nil, err
		}
		for _, ca := range aplicados {
			ca.IncidenteID = incidente.ID
		}
	}

	err = uc.txRunner.Run(ctx, func(incRepo repository.IncidenteRepository) error {
		if err := incRepo.Update(incidente); err != nil {
			return err
		}
		if !reemplazarCodigos {
			return nil
		}
		if err := incRepo.DeleteCodigosByIncidente(incidente.ID); err != nil {
			return err
		}
		for _, ca := range aplicados {
			if err := incRepo.CreateCodigo(ca); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if reemplazarCodigos {
		incidente.Codigos = aplicados
	}
	return toResponse(incidente), nil
}

// Transicionar cambia el estado del incidente según la tabla de transiciones
// y agrega la fila de historial (append-only) en la misma transacción.
func (uc *UseCase) Transicionar(ctx context.Context, id string, in dto.TransicionRequest) (*dto.IncidenteResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	incidente, err := uc.incRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if incidente == nil {
		return nil, domain.ErrNotFound
	}
	if err := guardias.ValidarTransicion(incidente.Estado, in.Estado); err != nil {
		return nil, err
	}

	anterior := incidente.Estado
	incidente.Estado = in.Estado
	incidente.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(incRepo repository.IncidenteRepository) error {
		if err := incRepo.Update(incidente); err != nil {
			return err
		}
		return incRepo.CreateHistorial(&entity.HistorialEstado{
			ID:             uuid.New().String(),
			IncidenteID:    incidente.ID,
			EstadoAnterior: anterior,
			EstadoNuevo:    in.Estado,
			CambiadoPor:    in.Actor,
			Observaciones:  in.Nota,
			CreatedAt:      incidente.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toResponse(incidente), nil
}

// GetByID obtiene un incidente con sus códigos aplicados.
func (uc *UseCase) GetByID(id string) (*dto.IncidenteResponse, error) {
	incidente, err := uc.incRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if incidente == nil {
		return nil, nil
	}
	if incidente.Codigos == nil {
		codigos, err := uc.incRepo.ListCodigos(id)
		if err != nil {
			return nil, err
		}
		incidente.Codigos = codigos
	}
	return toResponse(incidente), nil
}

// Historial devuelve las transiciones registradas del incidente.
func (uc *UseCase) Historial(id string) ([]*dto.HistorialResponse, error) {
	hists, err := uc.incRepo.ListHistorial(id)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.HistorialResponse, 0, len(hists))
	for _, h := range hists {
		out = append(out, &dto.HistorialResponse{
			EstadoAnterior: h.EstadoAnterior,
			EstadoNuevo:    h.EstadoNuevo,
			CambiadoPor:    h.CambiadoPor,
			Observaciones:  h.Observaciones,
			Fecha:          h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// armarCodigos valida cada código aplicado contra el nomenclador y computa sus
// minutos: los códigos nocturnos llevan los minutos dentro de la franja
// nocturna, el resto la duración completa del incidente.
func (uc *UseCase) armarCodigos(in []dto.CodigoAplicadoRequest, inicio, fin time.Time) ([]*entity.CodigoAplicado, error) {
	duracion := int(fin.Sub(inicio) / time.Minute)
	aplicados := make([]*entity.CodigoAplicado, 0, len(in))
	for _, req := range in {
		cod, err := uc.codigoRepo.GetByID(req.CodigoID)
		if err != nil {
			return nil, err
		}
		if cod == nil {
			return nil, fmt.Errorf("codigo %s: %w", req.CodigoID, domain.ErrNotFound)
		}
		if !cod.Activo {
			return nil, fmt.Errorf("codigo %s inactivo: %w", cod.Codigo, domain.ErrValidacion)
		}
		if !cod.VigenteEn(inicio) {
			return nil, fmt.Errorf("codigo %s fuera de vigencia para %s: %w", cod.Codigo, inicio.Format("2006-01-02"), domain.ErrValidacion)
		}
		minutos := duracion
		if cod.Tipo == entity.TipoHoraNocturna {
			minutos = guardias.MinutosNocturnos(inicio, fin)
		}
		aplicados = append(aplicados, &entity.CodigoAplicado{
			ID:          uuid.New().String(),
			CodigoID:    cod.ID,
			Codigo:      cod.Codigo,
			Minutos:     minutos,
			Observacion: req.Observacion,
		})
	}
	return aplicados, nil
}

func parseRango(inicio, fin string) (time.Time, time.Time, error) {
	ini, err := time.Parse(time.RFC3339, inicio)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("inicio inválido: %w", domain.ErrValidacion)
	}
	f, err := time.Parse(time.RFC3339, fin)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fin inválido: %w", domain.ErrValidacion)
	}
	if !f.After(ini) {
		return time.Time{}, time.Time{}, fmt.Errorf("el fin debe ser posterior al inicio: %w", domain.ErrValidacion)
	}
	return ini, f, nil
}

func toResponse(i *entity.Incidente) *dto.IncidenteResponse {
	resp := &dto.IncidenteResponse{
		ID:              i.ID,
		GuardiaID:       i.GuardiaID,
		Inicio:          i.Inicio.Format(time.RFC3339),
		Fin:             i.Fin.Format(time.RFC3339),
		Descripcion:     i.Descripcion,
		Estado:          i.Estado,
		RegistradoPor:   i.RegistradoPor,
		Observaciones:   i.Observaciones,
		DuracionMinutos: i.DuracionMinutos,
		Codigos:         make([]dto.CodigoAplicadoResponse, 0, len(i.Codigos)),
	}
	for _, ca := range i.Codigos {
		resp.Codigos = append(resp.Codigos, dto.CodigoAplicadoResponse{
			ID:          ca.ID,
			CodigoID:    ca.CodigoID,
			Codigo:      ca.Codigo,
			Minutos:     ca.Minutos,
			Importe:     ca.Importe,
			Observacion: ca.Observacion,
		})
	}
	return resp
}
