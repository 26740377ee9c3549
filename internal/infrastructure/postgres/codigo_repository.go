package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

var _ repository.CodigoRepository = (*CodigoRepo)(nil)

// CodigoRepo implementación del puerto CodigoRepository sobre PostgreSQL (usable con pool o tx).
type CodigoRepo struct {
	q Querier
}

// NewCodigoRepository construye el adaptador de persistencia para el nomenclador.
func NewCodigoRepository(q Querier) *CodigoRepo {
	return &CodigoRepo{q: q}
}

const codigoColumnas = `id, codigo, descripcion, tipo, dias_aplicables, franja_inicio, franja_fin, factor, vigencia_desde, vigencia_hasta, activo, modalidad, created_at, updated_at`

// Create persiste un código nuevo del nomenclador.
func (r *CodigoRepo) Create(codigo *entity.CodigoFacturacion) error {
	query := `
		INSERT INTO codigos_facturacion (` + codigoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		codigo.ID, codigo.Codigo, codigo.Descripcion, codigo.Tipo, codigo.DiasAplicables,
		codigo.FranjaInicio, codigo.FranjaFin, codigo.Factor, codigo.VigenciaDesde,
		codigo.VigenciaHasta, codigo.Activo, codigo.Modalidad, codigo.CreatedAt, codigo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert codigo: %w", err)
	}
	return nil
}

// GetByID obtiene un código por ID.
func (r *CodigoRepo) GetByID(id string) (*entity.CodigoFacturacion, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+codigoColumnas+` FROM codigos_facturacion WHERE id = $1`, id)
	return scanCodigo(row)
}

// ListByCodigoModalidad devuelve todas las versiones de un código para una modalidad.
func (r *CodigoRepo) ListByCodigoModalidad(codigo, modalidad string) ([]*entity.CodigoFacturacion, error) {
	query := `
		SELECT ` + codigoColumnas + ` FROM codigos_facturacion
		WHERE codigo = $1 AND modalidad = $2 ORDER BY vigencia_desde`
	rows, err := r.q.Query(context.Background(), query, codigo, modalidad)
	if err != nil {
		return nil, fmt.Errorf("list versiones codigo: %w", err)
	}
	return scanCodigos(rows)
}

// ListVigentes devuelve los códigos activos cuya vigencia cubre la fecha.
func (r *CodigoRepo) ListVigentes(fecha time.Time, modalidad string) ([]*entity.CodigoFacturacion, error) {
	query := `
		SELECT ` + codigoColumnas + ` FROM codigos_facturacion
		WHERE activo AND modalidad = $2
		  AND vigencia_desde <= $1
		  AND (vigencia_hasta IS NULL OR vigencia_hasta >= $1)
		ORDER BY codigo`
	rows, err := r.q.Query(context.Background(), query, fecha, modalidad)
	if err != nil {
		return nil, fmt.Errorf("list codigos vigentes: %w", err)
	}
	return scanCodigos(rows)
}

// List lista códigos con paginación.
func (r *CodigoRepo) List(limit, offset int) ([]*entity.CodigoFacturacion, error) {
	query := `
		SELECT ` + codigoColumnas + ` FROM codigos_facturacion
		ORDER BY codigo, modalidad, vigencia_desde LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list codigos: %w", err)
	}
	return scanCodigos(rows)
}

// Update actualiza un código existente.
func (r *CodigoRepo) Update(codigo *entity.CodigoFacturacion) error {
	query := `
		UPDATE codigos_facturacion
		SET descripcion = $2, dias_aplicables = $3, franja_inicio = $4, franja_fin = $5,
		    factor = $6, vigencia_hasta = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		codigo.ID, codigo.Descripcion, codigo.DiasAplicables, codigo.FranjaInicio,
		codigo.FranjaFin, codigo.Factor, codigo.VigenciaHasta, codigo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update codigo: %w", err)
	}
	return nil
}

// Desactivar marca el código como inactivo (baja lógica).
func (r *CodigoRepo) Desactivar(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE codigos_facturacion SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("desactivar codigo: %w", err)
	}
	return nil
}

func scanCodigo(row pgx.Row) (*entity.CodigoFacturacion, error) {
	var c entity.CodigoFacturacion
	err := row.Scan(
		&c.ID, &c.Codigo, &c.Descripcion, &c.Tipo, &c.DiasAplicables, &c.FranjaInicio,
		&c.FranjaFin, &c.Factor, &c.VigenciaDesde, &c.VigenciaHasta, &c.Activo,
		&c.Modalidad, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan codigo: %w", err)
	}
	return &c, nil
}

func scanCodigos(rows pgx.Rows) ([]*entity.CodigoFacturacion, error) {
	defer rows.Close()
	var list []*entity.CodigoFacturacion
	for rows.Next() {
		var c entity.CodigoFacturacion
		if err := rows.Scan(
			&c.ID, &c.Codigo, &c.Descripcion, &c.Tipo, &c.DiasAplicables, &c.FranjaInicio,
			&c.FranjaFin, &c.Factor, &c.VigenciaDesde, &c.VigenciaHasta, &c.Activo,
			&c.Modalidad, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan codigo: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
