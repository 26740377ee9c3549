package feriados

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

const formatoFecha = "2006-01-02"

// UseCase mantiene el calendario de feriados que alimenta la clasificación de
// días del motor.
type UseCase struct {
	repo repository.FeriadoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.FeriadoRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Crear da de alta un feriado. La fecha es única en el calendario.
func (uc *UseCase) Crear(in dto.CreateFeriadoRequest) (*dto.FeriadoResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	fecha, err := time.Parse(formatoFecha, in.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", domain.ErrValidacion)
	}
	feriado := &entity.Feriado{
		ID:          uuid.New().String(),
		Fecha:       fecha,
		Descripcion: in.Descripcion,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(feriado); err != nil {
		return nil, err
	}
	return toResponse(feriado), nil
}

// ListarPorAnio lista los feriados de un año calendario.
func (uc *UseCase) ListarPorAnio(anio int) ([]*dto.FeriadoResponse, error) {
	feriados, err := uc.repo.ListByAnio(anio)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FeriadoResponse, 0, len(feriados))
	for _, f := range feriados {
		out = append(out, toResponse(f))
	}
	return out, nil
}

// Eliminar borra un feriado del calendario.
func (uc *UseCase) Eliminar(id string) error {
	return uc.repo.Delete(id)
}

func toResponse(f *entity.Feriado) *dto.FeriadoResponse {
	return &dto.FeriadoResponse{
		ID:          f.ID,
		Fecha:       f.Fecha.Format(formatoFecha),
		Descripcion: f.Descripcion,
	}
}
