package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

var _ repository.FeriadoRepository = (*FeriadoRepo)(nil)

// FeriadoRepo calendario de feriados sobre PostgreSQL.
type FeriadoRepo struct {
	q Querier
}

// NewFeriadoRepository construye el adaptador del calendario de feriados.
func NewFeriadoRepository(q Querier) *FeriadoRepo {
	return &FeriadoRepo{q: q}
}

// Create da de alta un feriado. La fecha es única.
func (r *FeriadoRepo) Create(feriado *entity.Feriado) error {
	query := `
		INSERT INTO feriados (id, fecha, descripcion, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		feriado.ID, feriado.Fecha, feriado.Descripcion, feriado.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert feriado: %w", err)
	}
	return nil
}

// EsFeriado responde si la fecha (parte día) es feriado.
func (r *FeriadoRepo) EsFeriado(fecha time.Time) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM feriados WHERE fecha = $1::date)`,
		fecha,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("consultar feriado: %w", err)
	}
	return existe, nil
}

// ListByAnio lista los feriados de un año calendario.
func (r *FeriadoRepo) ListByAnio(anio int) ([]*entity.Feriado, error) {
	desde := time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(1, 0, 0)
	rows, err := r.q.Query(context.Background(),
		`SELECT id, fecha, descripcion, created_at FROM feriados WHERE fecha >= $1 AND fecha < $2 ORDER BY fecha`,
		desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list feriados: %w", err)
	}
	defer rows.Close()
	var list []*entity.Feriado
	for rows.Next() {
		var f entity.Feriado
		if err := rows.Scan(&f.ID, &f.Fecha, &f.Descripcion, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feriado: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Delete elimina un feriado por ID.
func (r *FeriadoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM feriados WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feriado: %w", err)
	}
	return nil
}
