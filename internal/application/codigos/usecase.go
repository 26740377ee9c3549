package codigos

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/guslozua/bitacora-api/internal/application/dto"
	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/guardias"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

const (
	formatoFecha = "2006-01-02"
	formatoHora  = "15:04"
)

// UseCase administra el nomenclador de códigos y resuelve aplicabilidad.
type UseCase struct {
	repo     repository.CodigoRepository
	feriados repository.FeriadoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CodigoRepository, feriados repository.FeriadoRepository) *UseCase {
	return &UseCase{repo: repo, feriados: feriados}
}

// Crear da de alta un código. (codigo, modalidad, vigencia_desde) es único y
// las vigencias del mismo código+modalidad no pueden solaparse.
func (uc *UseCase) Crear(in dto.CreateCodigoRequest) (*dto.CodigoResponse, error) {
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
		hasta = &h
	}
	franjaIni, franjaFin, err := parseFranja(in.FranjaInicio, in.FranjaFin)
	if err != nil {
		return nil, err
	}
	if in.Factor.IsNegative() {
		return nil, fmt.Errorf("el factor no puede ser negativo: %w", domain.ErrValidacion)
	}

	versiones, err := uc.repo.ListByCodigoModalidad(in.Codigo, in.Modalidad)
	if err != nil {
		return nil, err
	}
	for _, v := range versiones {
		if v.VigenciaDesde.Equal(desde) {
			return nil, fmt.Errorf("codigo %s modalidad %s desde %s: %w", in.Codigo, in.Modalidad, in.VigenciaDesde, domain.ErrDuplicado)
		}
		if v.Activo && solapaVigencia(v, desde, hasta) {
			return nil, fmt.Errorf("codigo %s versión %s: %w", in.Codigo, v.ID, domain.ErrSolapamientoVigencia)
		}
	}

	now := time.Now()
	codigo := &entity.CodigoFacturacion{
		ID:             uuid.New().String(),
		Codigo:         in.Codigo,
		Descripcion:    in.Descripcion,
		Tipo:           in.Tipo,
		DiasAplicables: in.DiasAplicables,
		FranjaInicio:   franjaIni,
		FranjaFin:      franjaFin,
		Factor:         in.Factor,
		VigenciaDesde:  desde,
		VigenciaHasta:  hasta,
		Activo:         true,
		Modalidad:      in.Modalidad,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(codigo); err != nil {
		return nil, err
	}
	return toResponse(codigo), nil
}

// BuscarAplicables devuelve los códigos del nomenclador que aplican a la fecha
// y franja horaria dadas, para la modalidad. Función de solo lectura, usada
// tanto para sugerir códigos al crear un incidente como para validar una
// selección del usuario. El resultado se ordena por código: correr dos veces
// con la misma entrada, o permutar el catálogo, no cambia el conjunto.
func (uc *UseCase) BuscarAplicables(fecha time.Time, horaInicio, horaFin int, modalidad string) ([]*entity.CodigoFacturacion, error) {
	esFeriado, err := uc.feriados.EsFeriado(fecha)
	if err != nil {
		return nil, err
	}
	letraDia := guardias.ClasificarDia(fecha, esFeriado)

	vigentes, err := uc.repo.ListVigentes(fecha, modalidad)
	if err != nil {
		return nil, err
	}

	var aplicables []*entity.CodigoFacturacion
	for _, cod := range vigentes {
		if !cod.Activo || !cod.VigenteEn(fecha) || !cod.AplicaDia(letraDia) {
			continue
		}
		if cod.TieneFranja() && !guardias.SolapaFranja(horaInicio, horaFin, *cod.FranjaInicio, *cod.FranjaFin) {
			continue
		}
		aplicables = append(aplicables, cod)
	}
	sort.Slice(aplicables, func(i, j int) bool { return aplicables[i].Codigo < aplicables[j].Codigo })
	return aplicables, nil
}

// BuscarAplicablesDTO variante para la capa HTTP, con fechas y horas en texto.
func (uc *UseCase) BuscarAplicablesDTO(in dto.BuscarAplicablesRequest) ([]*dto.CodigoResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	fecha, err := time.Parse(formatoFecha, in.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", domain.ErrValidacion)
	}
	ini, err := parseHora(in.HoraInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseHora(in.HoraFin)
	if err != nil {
		return nil, err
	}
	codigos, err := uc.BuscarAplicables(fecha, ini, fin, in.Modalidad)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CodigoResponse, 0, len(codigos))
	for _, c := range codigos {
		out = append(out, toResponse(c))
	}
	return out, nil
}

// Actualizar edita un código existente.
func (uc *UseCase) Actualizar(id string, in dto.UpdateCodigoRequest) (*dto.CodigoResponse, error) {
	if err := dto.Validar(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrValidacion)
	}
	codigo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if codigo == nil {
		return nil, domain.ErrNotFound
	}
	if in.Descripcion != nil {
		codigo.Descripcion = *in.Descripcion
	}
	if len(in.DiasAplicables) > 0 {
		codigo.DiasAplicables = in.DiasAplicables
	}
	if in.FranjaInicio != nil || in.FranjaFin != nil {
		ini, fin, err := parseFranja(in.FranjaInicio, in.FranjaFin)
		if err != nil {
			return nil, err
		}
		codigo.FranjaInicio = ini
		codigo.FranjaFin = fin
	}
	if in.Factor != nil {
		if in.Factor.IsNegative() {
			return nil, fmt.Errorf("el factor no puede ser negativo: %w", domain.ErrValidacion)
		}
		codigo.Factor = *in.Factor
	}
	if in.VigenciaHasta != nil {
		h, err := time.Parse(formatoFecha, *in.VigenciaHasta)
		if err != nil {
			return nil, fmt.Errorf("vigencia_hasta inválida: %w", domain.ErrValidacion)
		}
		codigo.VigenciaHasta = &h
	}
	codigo.UpdatedAt = time.Now()
	if err := uc.repo.Update(codigo); err != nil {
		return nil, err
	}
	return toResponse(codigo), nil
}

// Desactivar es baja lógica: un código referenciado por incidentes nunca se
// borra físicamente.
func (uc *UseCase) Desactivar(id string) error {
	codigo, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if codigo == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Desactivar(id)
}

// GetByID obtiene un código por ID.
func (uc *UseCase) GetByID(id string) (*dto.CodigoResponse, error) {
	codigo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if codigo == nil {
		return nil, nil
	}
	return toResponse(codigo), nil
}

// Listar lista códigos con paginación.
func (uc *UseCase) Listar(limit, offset int) ([]*dto.CodigoResponse, error) {
	codigos, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CodigoResponse, 0, len(codigos))
	for _, c := range codigos {
		out = append(out, toResponse(c))
	}
	return out, nil
}

// solapaVigencia replica la regla de tarifas para versiones de un código.
func solapaVigencia(c *entity.CodigoFacturacion, desde time.Time, hasta *time.Time) bool {
	if c.VigenciaHasta != nil && c.VigenciaHasta.Before(desde) {
		return false
	}
	if hasta != nil && hasta.Before(c.VigenciaDesde) {
		return false
	}
	return true
}

// parseFranja convierte el par opcional HH:MM a minutos del día. Ambos
// extremos deben venir juntos o ninguno.
func parseFranja(inicio, fin *string) (*int, *int, error) {
	if inicio == nil && fin == nil {
		return nil, nil, nil
	}
	if inicio == nil || fin == nil {
		return nil, nil, fmt.Errorf("franja incompleta, se requieren inicio y fin: %w", domain.ErrValidacion)
	}
	ini, err := parseHora(*inicio)
	if err != nil {
		return nil, nil, err
	}
	f, err := parseHora(*fin)
	if err != nil {
		return nil, nil, err
	}
	return &ini, &f, nil
}

func parseHora(s string) (int, error) {
	t, err := time.Parse(formatoHora, s)
	if err != nil {
		return 0, fmt.Errorf("hora %q inválida (HH:MM): %w", s, domain.ErrValidacion)
	}
	return guardias.MinutoDelDia(t.Hour(), t.Minute()), nil
}

func toResponse(c *entity.CodigoFacturacion) *dto.CodigoResponse {
	resp := &dto.CodigoResponse{
		ID:             c.ID,
		Codigo:         c.Codigo,
		Descripcion:    c.Descripcion,
		Tipo:           c.Tipo,
		DiasAplicables: c.DiasAplicables,
		Factor:         c.Factor,
		VigenciaDesde:  c.VigenciaDesde.Format(formatoFecha),
		Activo:         c.Activo,
		Modalidad:      c.Modalidad,
	}
	if c.VigenciaHasta != nil {
		h := c.VigenciaHasta.Format(formatoFecha)
		resp.VigenciaHasta = &h
	}
	if c.TieneFranja() {
		ini := formatoMinutos(*c.FranjaInicio)
		fin := formatoMinutos(*c.FranjaFin)
		resp.FranjaInicio = &ini
		resp.FranjaFin = &fin
	}
	return resp
}

func formatoMinutos(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
