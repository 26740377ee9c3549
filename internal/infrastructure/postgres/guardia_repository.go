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

var _ repository.GuardiaRepository = (*GuardiaRepo)(nil)

// GuardiaRepo implementación del puerto GuardiaRepository sobre PostgreSQL (usable con pool o tx).
type GuardiaRepo struct {
	q Querier
}

// NewGuardiaRepository construye el adaptador de persistencia para guardias.
func NewGuardiaRepository(q Querier) *GuardiaRepo {
	return &GuardiaRepo{q: q}
}

const guardiaColumnas = `id, fecha, usuario, notas, created_at, updated_at`

// Create persiste una guardia. (fecha, usuario) es único en la tabla.
func (r *GuardiaRepo) Create(guardia *entity.Guardia) error {
	query := `
		INSERT INTO guardias (` + guardiaColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		guardia.ID, guardia.Fecha, guardia.Usuario, guardia.Notas, guardia.CreatedAt, guardia.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert guardia: %w", err)
	}
	return nil
}

// GetByID obtiene una guardia por ID.
func (r *GuardiaRepo) GetByID(id string) (*entity.Guardia, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+guardiaColumnas+` FROM guardias WHERE id = $1`, id)
	return scanGuardia(row)
}

// GetByFechaUsuario busca la guardia de un titular en una fecha.
func (r *GuardiaRepo) GetByFechaUsuario(fecha time.Time, usuario string) (*entity.Guardia, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+guardiaColumnas+` FROM guardias WHERE fecha = $1 AND usuario = $2`, fecha, usuario)
	return scanGuardia(row)
}

// ListByRango lista guardias con fecha en [desde, hasta).
func (r *GuardiaRepo) ListByRango(desde, hasta time.Time) ([]*entity.Guardia, error) {
	query := `
		SELECT ` + guardiaColumnas + ` FROM guardias
		WHERE fecha >= $1 AND fecha < $2 ORDER BY fecha, usuario`
	rows, err := r.q.Query(context.Background(), query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list guardias por rango: %w", err)
	}
	return scanGuardias(rows)
}

// List lista guardias con paginación.
func (r *GuardiaRepo) List(limit, offset int) ([]*entity.Guardia, error) {
	query := `
		SELECT ` + guardiaColumnas + ` FROM guardias
		ORDER BY fecha DESC, usuario LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list guardias: %w", err)
	}
	return scanGuardias(rows)
}

// Update actualiza titular o notas de una guardia.
func (r *GuardiaRepo) Update(guardia *entity.Guardia) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE guardias SET usuario = $2, notas = $3, updated_at = $4 WHERE id = $1`,
		guardia.ID, guardia.Usuario, guardia.Notas, guardia.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("update guardia: %w", err)
	}
	return nil
}

// Delete elimina una guardia por ID.
func (r *GuardiaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM guardias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guardia: %w", err)
	}
	return nil
}

func scanGuardia(row pgx.Row) (*entity.Guardia, error) {
	var g entity.Guardia
	err := row.Scan(&g.ID, &g.Fecha, &g.Usuario, &g.Notas, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan guardia: %w", err)
	}
	return &g, nil
}

func scanGuardias(rows pgx.Rows) ([]*entity.Guardia, error) {
	defer rows.Close()
	var list []*entity.Guardia
	for rows.Next() {
		var g entity.Guardia
		if err := rows.Scan(&g.ID, &g.Fecha, &g.Usuario, &g.Notas, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan guardia: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
