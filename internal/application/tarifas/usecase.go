package tarifas

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

const formatoFecha = "2006-01-02"

// UseCase resuelve y administra tarifas versionadas.
type UseCase struct {
	repo repository.TarifaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.TarifaRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Resolver devuelve la tarifa vigente para la fecha: entre las que cubren la
// fecha gana la de VigenciaDesde más reciente, y a igual desde la creada más
// recientemente. Sin tarifa vigente el cálculo debe abortar: nunca se
// devuelve una tarifa por defecto.
func (uc *UseCase) Resolver(fecha time.Time) (*entity.Tarifa, error) {
	candidatas, err := uc.repo.ListVigentes(fecha)
	if err != nil {
		return nil, err
	}
	if len(candidatas) == 0 {
		return nil, fmt.Errorf("fecha %s: %w", fecha.Format(formatoFecha), domain.ErrSinTarifaVigente)
	}
	sort.Slice(candidatas, func(i, j int) bool {
		if !candidatas[i].VigenciaDesde.Equal(candidatas[j].VigenciaDesde) {
			return candidatas[i].VigenciaDesde.After(candidatas[j].VigenciaDesde)
		}
		return candidatas[i].CreatedAt.After(candidatas[j].CreatedAt)
	})
	elegida := candidatas[0]
	if !elegida.VigenteEn(fecha) {
		// El repositorio nunca debería devolver una tarifa que no cubre la fecha.
		return nil, fmt.Errorf("tarifa %s no cubre la fecha %s: %w", elegida.ID, fecha.Format(formatoFecha), domain.ErrSinTarifaVigente)
	}
	return elegida, nil
}

// Crear da de alta una tarifa validando que no se solape con otra activa del
// mismo nombre. El registro en conflicto se identifica en el error.
func (uc *UseCase) Crear(in dto.CreateTarifaRequest) (*dto.TarifaResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	desde, err := time.Parse(formatoFecha, in.VigenciaDesde)
	if err != nil {
		return nil, fmt.Errorf("vigencia_desde inválida: %w", domain.ErrValidacion)
	}
	var hasta *time.Time
	if in.VigenciaHasta != nil {
		h, err := time.Parse(formatoFecha, *in.VigenciaHasta)
		if err != nil {
			return nil, fmt.Errorf("vigencia_hasta inválida: %w", domain.ErrValidacion)
		}
		if h.Before(desde) {
			return nil, fmt.Errorf("vigencia_hasta anterior a vigencia_desde: %w", domain.ErrValidacion)
		}
		hasta = &h
	}

	existentes, err := uc.repo.ListByNombre(in.Nombre)
	if err != nil {
		return nil, err
	}
	for _, t := range existentes {
		if t.Activo && t.SolapaCon(desde, hasta) {
			return nil, fmt.Errorf("tarifa %s (desde %s): %w", t.ID, t.VigenciaDesde.Format(formatoFecha), domain.ErrSolapamientoVigencia)
		}
	}

	now := time.Now()
	tarifa := &entity.Tarifa{
		ID:                   uuid.New().String(),
		Nombre:               in.Nombre,
		ValorGuardiaPasiva:   in.ValorGuardiaPasiva,
		ValorHoraActiva:      in.ValorHoraActiva,
		ValorNocturnoHabil:   in.ValorNocturnoHabil,
		ValorNocturnoNoHabil: in.ValorNocturnoNoHabil,
		VigenciaDesde:        desde,
		VigenciaHasta:        hasta,
		Activo:               true,
		Observaciones:        in.Observaciones,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(tarifa); err != nil {
		return nil, err
	}
	return toResponse(tarifa), nil
}

// Actualizar edita valores u observaciones de una tarifa existente.
func (uc *UseCase) Actualizar(id string, in dto.UpdateTarifaRequest) (*dto.TarifaResponse, error) {
	tarifa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tarifa == nil {
		return nil, domain.ErrNotFound
	}
	if in.ValorGuardiaPasiva != nil {
		tarifa.ValorGuardiaPasiva = *in.ValorGuardiaPasiva
	}
	if in.ValorHoraActiva != nil {
		tarifa.ValorHoraActiva = *in.ValorHoraActiva
	}
	if in.ValorNocturnoHabil != nil {
		tarifa.ValorNocturnoHabil = *in.ValorNocturnoHabil
	}
	if in.ValorNocturnoNoHabil != nil {
		tarifa.ValorNocturnoNoHabil = *in.ValorNocturnoNoHabil
	}
	if in.VigenciaHasta != nil {
		h, err := time.Parse(formatoFecha, *in.VigenciaHasta)
		if err != nil {
			return nil, fmt.Errorf("vigencia_hasta inválida: %w", domain.ErrValidacion)
		}
		tarifa.VigenciaHasta = &h
	}
	if in.Observaciones != nil {
		tarifa.Observaciones = *in.Observaciones
	}
	tarifa.UpdatedAt = time.Now()
	if err := uc.repo.Update(tarifa); err != nil {
		return nil, err
	}
	return toResponse(tarifa), nil
}

// Desactivar es baja lógica. Los importes ya persistidos en liquidaciones son
// snapshots y no se recalculan con tarifas vivas.
func (uc *UseCase) Desactivar(id string) error {
	tarifa, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if tarifa == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Desactivar(id)
}

// GetByID obtiene una tarifa por ID.
func (uc *UseCase) GetByID(id string) (*dto.TarifaResponse, error) {
	tarifa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tarifa == nil {
		return nil, nil
	}
	return toResponse(tarifa), nil
}

// Listar lista tarifas con paginación.
func (uc *UseCase) Listar(limit, offset int) ([]*dto.TarifaResponse, error) {
	tarifas, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TarifaResponse, 0, len(tarifas))
	for _, t := range tarifas {
		out = append(out, toResponse(t))
	}
	return out, nil
}

func toResponse(t *entity.Tarifa) *dto.TarifaResponse {
	resp := &dto.TarifaResponse{
		ID:                   t.ID,
		Nombre:               t.Nombre,
		ValorGuardiaPasiva:   t.ValorGuardiaPasiva,
		ValorHoraActiva:      t.ValorHoraActiva,
		ValorNocturnoHabil:   t.ValorNocturnoHabil,
		ValorNocturnoNoHabil: t.ValorNocturnoNoHabil,
		VigenciaDesde:        t.VigenciaDesde.Format(formatoFecha),
		Activo:               t.Activo,
		Observaciones:        t.Observaciones,
	}
	if t.VigenciaHasta != nil {
		h := t.VigenciaHasta.Format(formatoFecha)
		resp.VigenciaHasta = &h
	}
	return resp
}
