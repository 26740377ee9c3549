package guardias

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

const formatoFecha = "2006-01-02"

// UseCase casos de uso CRUD para guardias.
type UseCase struct {
	txRunner TxRunner
	repo     repository.GuardiaRepository
	incRepo  repository.IncidenteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, repo repository.GuardiaRepository, incRepo repository.IncidenteRepository) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, incRepo: incRepo}
}

// Crear da de alta una guardia. (fecha, usuario) es único.
func (uc *UseCase) Crear(in dto.CreateGuardiaRequest) (*dto.GuardiaResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	fecha, err := time.Parse(formatoFecha, in.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", domain.ErrValidacion)
	}
	existente, err := uc.repo.GetByFechaUsuario(fecha, in.Usuario)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("guardia de %s el %s: %w", in.Usuario, in.Fecha, domain.ErrDuplicado)
	}

	now := time.Now()
	guardia := &entity.Guardia{
		ID:        uuid.New().String(),
		Fecha:     fecha,
		Usuario:   in.Usuario,
		Notas:     in.Notas,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(guardia); err != nil {
		return nil, err
	}
	return toResponse(guardia), nil
}

// Actualizar edita titular o notas de una guardia.
func (uc *UseCase) Actualizar(id string, in dto.UpdateGuardiaRequest) (*dto.GuardiaResponse, error) {
	guardia, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if guardia == nil {
		return nil, domain.ErrNotFound
	}
	if in.Usuario != nil {
		guardia.Usuario = *in.Usuario
	}
	if in.Notas != nil {
		guardia.Notas = *in.Notas
	}
	guardia.UpdatedAt = time.Now()
	if err := uc.repo.Update(guardia); err != nil {
		return nil, err
	}
	return toResponse(guardia), nil
}

// Eliminar borra la guardia y sus incidentes en cascada, en una sola
// transacción. Si algún incidente ya está liquidado la baja se rechaza
// completa: un incidente liquidado nunca se borra.
func (uc *UseCase) Eliminar(ctx context.Context, id string) error {
	guardia, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if guardia == nil {
		return domain.ErrNotFound
	}
	incidentes, err := uc.incRepo.ListByGuardia(id)
	if err != nil {
		return err
	}
	for _, inc := range incidentes {
		if inc.Bloqueado() {
			return fmt.Errorf("incidente %s liquidado, la guardia no puede borrarse: %w", inc.ID, domain.ErrIncidenteBloqueado)
		}
	}

	return uc.txRunner.RunGuardia(ctx, func(
		guardiaRepo repository.GuardiaRepository,
		incRepo repository.IncidenteRepository,
	) error {
		for _, inc := range incidentes {
			if err := incRepo.DeleteCodigosByIncidente(inc.ID); err != nil {
				return err
			}
			if err := incRepo.DeleteHistorialByIncidente(inc.ID); err != nil {
				return err
			}
		}
		if err := incRepo.DeleteByGuardia(id); err != nil {
			return err
		}
		return guardiaRepo.Delete(id)
	})
}

// GetByID obtiene una guardia por ID.
func (uc *UseCase) GetByID(id string) (*dto.GuardiaResponse, error) {
	guardia, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if guardia == nil {
		return nil, nil
	}
	return toResponse(guardia), nil
}

// Listar lista guardias con paginación.
func (uc *UseCase) Listar(limit, offset int) ([]*dto.GuardiaResponse, error) {
	guardiaslist, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GuardiaResponse, 0, len(guardiaslist))
	for _, g := range guardiaslist {
		out = append(out, toResponse(g))
	}
	return out, nil
}

func toResponse(g *entity.Guardia) *dto.GuardiaResponse {
	return &dto.GuardiaResponse{
		ID:      g.ID,
		Fecha:   g.Fecha.Format(formatoFecha),
		Usuario: g.Usuario,
		Notas:   g.Notas,
	}
}
