package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

var _ repository.IncidenteRepository = (*IncidenteRepo)(nil)

// IncidenteRepo implementación del puerto IncidenteRepository sobre PostgreSQL
// (usable con pool o tx). Cubre incidentes, códigos aplicados e historial.
type IncidenteRepo struct {
	q Querier
}

// NewIncidenteRepository construye el adaptador de persistencia para incidentes.
func NewIncidenteRepository(q Querier) *IncidenteRepo {
	return &IncidenteRepo{q: q}
}

const incidenteColumnas = `id, guardia_id, inicio, fin, descripcion, estado, registrado_por, observaciones, duracion_minutos, created_at, updated_at`

// Create persiste un incidente nuevo.
func (r *IncidenteRepo) Create(incidente *entity.Incidente) error {
	query := `
		INSERT INTO incidentes (` + incidenteColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		incidente.ID, incidente.GuardiaID, incidente.Inicio, incidente.Fin, incidente.Descripcion,
		incidente.Estado, incidente.RegistradoPor, incidente.Observaciones,
		incidente.DuracionMinutos, incidente.CreatedAt, incidente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert incidente: %w", err)
	}
	return nil
}

// GetByID obtiene un incidente por ID, sin códigos (se cargan con ListCodigos).
func (r *IncidenteRepo) GetByID(id string) (*entity.Incidente, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+incidenteColumnas+` FROM incidentes WHERE id = $1`, id)
	var i entity.Incidente
	err := row.Scan(
		&i.ID, &i.GuardiaID, &i.Inicio, &i.Fin, &i.Descripcion, &i.Estado,
		&i.RegistradoPor, &i.Observaciones, &i.DuracionMinutos, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incidente: %w", err)
	}
	return &i, nil
}

// ListByGuardia lista los incidentes de una guardia.
func (r *IncidenteRepo) ListByGuardia(guardiaID string) ([]*entity.Incidente, error) {
	query := `
		SELECT ` + incidenteColumnas + ` FROM incidentes
		WHERE guardia_id = $1 ORDER BY inicio`
	rows, err := r.q.Query(context.Background(), query, guardiaID)
	if err != nil {
		return nil, fmt.Errorf("list incidentes por guardia: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incidente
	for rows.Next() {
		var i entity.Incidente
		if err := rows.Scan(
			&i.ID, &i.GuardiaID, &i.Inicio, &i.Fin, &i.Descripcion, &i.Estado,
			&i.RegistradoPor, &i.Observaciones, &i.DuracionMinutos, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incidente: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// ListAprobadosEnRango devuelve incidentes aprobados cuya guardia cae en
// [desde, hasta), con titular y fecha de guardia resueltos vía join.
func (r *IncidenteRepo) ListAprobadosEnRango(desde, hasta time.Time) ([]*entity.IncidenteGuardia, error) {
	query := `
		SELECT i.id, i.guardia_id, i.inicio, i.fin, i.descripcion, i.estado, i.registrado_por,
		       i.observaciones, i.duracion_minutos, i.created_at, i.updated_at,
		       g.usuario, g.fecha
		FROM incidentes i
		JOIN guardias g ON g.id = i.guardia_id
		WHERE i.estado = $1 AND g.fecha >= $2 AND g.fecha < $3
		ORDER BY g.fecha, i.inicio`
	rows, err := r.q.Query(context.Background(), query, entity.EstadoAprobado, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list incidentes aprobados: %w", err)
	}
	defer rows.Close()
	var list []*entity.IncidenteGuardia
	for rows.Next() {
		var i entity.Incidente
		var ig entity.IncidenteGuardia
		if err := rows.Scan(
			&i.ID, &i.GuardiaID, &i.Inicio, &i.Fin, &i.Descripcion, &i.Estado,
			&i.RegistradoPor, &i.Observaciones, &i.DuracionMinutos, &i.CreatedAt, &i.UpdatedAt,
			&ig.Usuario, &ig.Fecha,
		); err != nil {
			return nil, fmt.Errorf("scan incidente aprobado: %w", err)
		}
		ig.Incidente = &i
		list = append(list, &ig)
	}
	return list, rows.Err()
}

// Update actualiza un incidente existente.
func (r *IncidenteRepo) Update(incidente *entity.Incidente) error {
	query := `
		UPDATE incidentes
		SET inicio = $2, fin = $3, descripcion = $4, estado = $5, observaciones = $6,
		    duracion_minutos = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		incidente.ID, incidente.Inicio, incidente.Fin, incidente.Descripcion,
		incidente.Estado, incidente.Observaciones, incidente.DuracionMinutos, incidente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update incidente: %w", err)
	}
	return nil
}

// Delete elimina un incidente por ID.
func (r *IncidenteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM incidentes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete incidente: %w", err)
	}
	return nil
}

// DeleteByGuardia elimina todos los incidentes de una guardia (baja en cascada).
func (r *IncidenteRepo) DeleteByGuardia(guardiaID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM incidentes WHERE guardia_id = $1`, guardiaID)
	if err != nil {
		return fmt.Errorf("delete incidentes de guardia: %w", err)
	}
	return nil
}

// CreateCodigo persiste un código aplicado al incidente.
func (r *IncidenteRepo) CreateCodigo(codigo *entity.CodigoAplicado) error {
	query := `
		INSERT INTO incidente_codigos (id, incidente_id, codigo_id, codigo, minutos, importe, observacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		codigo.ID, codigo.IncidenteID, codigo.CodigoID, codigo.Codigo,
		codigo.Minutos, codigo.Importe, codigo.Observacion,
	)
	if err != nil {
		return fmt.Errorf("insert codigo aplicado: %w", err)
	}
	return nil
}

// DeleteCodigosByIncidente borra el conjunto completo de códigos del incidente.
func (r *IncidenteRepo) DeleteCodigosByIncidente(incidenteID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM incidente_codigos WHERE incidente_id = $1`, incidenteID)
	if err != nil {
		return fmt.Errorf("delete codigos de incidente: %w", err)
	}
	return nil
}

// ListCodigos lista los códigos aplicados de un incidente.
func (r *IncidenteRepo) ListCodigos(incidenteID string) ([]*entity.CodigoAplicado, error) {
	query := `
		SELECT id, incidente_id, codigo_id, codigo, minutos, importe, observacion
		FROM incidente_codigos WHERE incidente_id = $1 ORDER BY codigo`
	rows, err := r.q.Query(context.Background(), query, incidenteID)
	if err != nil {
		return nil, fmt.Errorf("list codigos aplicados: %w", err)
	}
	defer rows.Close()
	var list []*entity.CodigoAplicado
	for rows.Next() {
		var c entity.CodigoAplicado
		if err := rows.Scan(&c.ID, &c.IncidenteID, &c.CodigoID, &c.Codigo, &c.Minutos, &c.Importe, &c.Observacion); err != nil {
			return nil, fmt.Errorf("scan codigo aplicado: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateCodigoImporte persiste el importe calculado de un código aplicado.
func (r *IncidenteRepo) UpdateCodigoImporte(codigoAplicadoID string, importe decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE incidente_codigos SET importe = $2 WHERE id = $1`, codigoAplicadoID, importe)
	if err != nil {
		return fmt.Errorf("update importe de codigo aplicado: %w", err)
	}
	return nil
}

// CreateHistorial agrega una fila al historial de estados (append-only).
func (r *IncidenteRepo) CreateHistorial(hist *entity.HistorialEstado) error {
	query := `
		INSERT INTO incidente_historial (id, incidente_id, estado_anterior, estado_nuevo, cambiado_por, observaciones, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		hist.ID, hist.IncidenteID, hist.EstadoAnterior, hist.EstadoNuevo,
		hist.CambiadoPor, hist.Observaciones, hist.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert historial: %w", err)
	}
	return nil
}

// ListHistorial lista el historial de un incidente en orden cronológico.
func (r *IncidenteRepo) ListHistorial(incidenteID string) ([]*entity.HistorialEstado, error) {
	query := `
		SELECT id, incidente_id, estado_anterior, estado_nuevo, cambiado_por, observaciones, created_at
		FROM incidente_historial WHERE incidente_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, incidenteID)
	if err != nil {
		return nil, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistorialEstado
	for rows.Next() {
		var h entity.HistorialEstado
		if err := rows.Scan(&h.ID, &h.IncidenteID, &h.EstadoAnterior, &h.EstadoNuevo, &h.CambiadoPor, &h.Observaciones, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan historial: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// DeleteHistorialByIncidente borra el historial completo de un incidente.
// Sólo lo usa la baja en cascada de la guardia; el historial de un incidente
// vivo es append-only.
func (r *IncidenteRepo) DeleteHistorialByIncidente(incidenteID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM incidente_historial WHERE incidente_id = $1`, incidenteID)
	if err != nil {
		return fmt.Errorf("delete historial de incidente: %w", err)
	}
	return nil
}
