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

var _ repository.TarifaRepository = (*TarifaRepo)(nil)

// TarifaRepo implementación del puerto TarifaRepository sobre PostgreSQL (usable con pool o tx).
type TarifaRepo struct {
	q Querier
}

// NewTarifaRepository construye el adaptador de persistencia para tarifas.
func NewTarifaRepository(q Querier) *TarifaRepo {
	return &TarifaRepo{q: q}
}

const tarifaColumnas = `id, nombre, valor_guardia_pasiva, valor_hora_activa, valor_nocturno_habil, valor_nocturno_no_habil, vigencia_desde, vigencia_hasta, activo, observaciones, created_at, updated_at`

// Create persiste una tarifa nueva.
func (r *TarifaRepo) Create(tarifa *entity.Tarifa) error {
	query := `
		INSERT INTO tarifas (` + tarifaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tarifa.ID, tarifa.Nombre, tarifa.ValorGuardiaPasiva, tarifa.ValorHoraActiva,
		tarifa.ValorNocturnoHabil, tarifa.ValorNocturnoNoHabil, tarifa.VigenciaDesde,
		tarifa.VigenciaHasta, tarifa.Activo, tarifa.Observaciones, tarifa.CreatedAt, tarifa.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert tarifa: %w", err)
	}
	return nil
}

// GetByID obtiene una tarifa por ID.
func (r *TarifaRepo) GetByID(id string) (*entity.Tarifa, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+tarifaColumnas+` FROM tarifas WHERE id = $1`, id)
	return scanTarifa(row)
}

// ListVigentes devuelve las tarifas activas cuya vigencia cubre la fecha.
func (r *TarifaRepo) ListVigentes(fecha time.Time) ([]*entity.Tarifa, error) {
	query := `
		SELECT ` + tarifaColumnas + ` FROM tarifas
		WHERE activo
		  AND vigencia_desde <= $1
		  AND (vigencia_hasta IS NULL OR vigencia_hasta >= $1)`
	rows, err := r.q.Query(context.Background(), query, fecha)
	if err != nil {
		return nil, fmt.Errorf("list tarifas vigentes: %w", err)
	}
	return scanTarifas(rows)
}

// ListByNombre devuelve las tarifas con ese nombre (control de solapamiento).
func (r *TarifaRepo) ListByNombre(nombre string) ([]*entity.Tarifa, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+tarifaColumnas+` FROM tarifas WHERE nombre = $1 ORDER BY vigencia_desde`, nombre)
	if err != nil {
		return nil, fmt.Errorf("list tarifas por nombre: %w", err)
	}
	return scanTarifas(rows)
}

// List lista tarifas con paginación.
func (r *TarifaRepo) List(limit, offset int) ([]*entity.Tarifa, error) {
	query := `
		SELECT ` + tarifaColumnas + ` FROM tarifas
		ORDER BY nombre, vigencia_desde DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tarifas: %w", err)
	}
	return scanTarifas(rows)
}

// Update actualiza valores u observaciones de una tarifa.
func (r *TarifaRepo) Update(tarifa *entity.Tarifa) error {
	query := `
		UPDATE tarifas
		SET valor_guardia_pasiva = $2, valor_hora_activa = $3, valor_nocturno_habil = $4,
		    valor_nocturno_no_habil = $5, vigencia_hasta = $6, observaciones = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tarifa.ID, tarifa.ValorGuardiaPasiva, tarifa.ValorHoraActiva, tarifa.ValorNocturnoHabil,
		tarifa.ValorNocturnoNoHabil, tarifa.VigenciaHasta, tarifa.Observaciones, tarifa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tarifa: %w", err)
	}
	return nil
}

// Desactivar es baja lógica; los importes ya liquidados no se recalculan.
func (r *TarifaRepo) Desactivar(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tarifas SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("desactivar tarifa: %w", err)
	}
	return nil
}

func scanTarifa(row pgx.Row) (*entity.Tarifa, error) {
	var t entity.Tarifa
	err := row.Scan(
		&t.ID, &t.Nombre, &t.ValorGuardiaPasiva, &t.ValorHoraActiva, &t.ValorNocturnoHabil,
		&t.ValorNocturnoNoHabil, &t.VigenciaDesde, &t.VigenciaHasta, &t.Activo,
		&t.Observaciones, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan tarifa: %w", err)
	}
	return &t, nil
}

func scanTarifas(rows pgx.Rows) ([]*entity.Tarifa, error) {
	defer rows.Close()
	var list []*entity.Tarifa
	for rows.Next() {
		var t entity.Tarifa
		if err := rows.Scan(
			&t.ID, &t.Nombre, &t.ValorGuardiaPasiva, &t.ValorHoraActiva, &t.ValorNocturnoHabil,
			&t.ValorNocturnoNoHabil, &t.VigenciaDesde, &t.VigenciaHasta, &t.Activo,
			&t.Observaciones, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tarifa: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
