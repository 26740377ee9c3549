package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

var _ repository.LiquidacionRepository = (*LiquidacionRepo)(nil)

// LiquidacionRepo implementación del puerto LiquidacionRepository sobre
// PostgreSQL (usable con pool o tx).
type LiquidacionRepo struct {
	q Querier
}

// NewLiquidacionRepository construye el adaptador de persistencia para liquidaciones.
func NewLiquidacionRepository(q Querier) *LiquidacionRepo {
	return &LiquidacionRepo{q: q}
}

const liquidacionColumnas = `id, periodo, estado, fecha_generacion, total_minutos, total_importe, created_at, updated_at`

// Create persiste la cabecera de un lote. El período es único en la tabla.
func (r *LiquidacionRepo) Create(liq *entity.Liquidacion) error {
	query := `
		INSERT INTO liquidaciones (` + liquidacionColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		liq.ID, liq.Periodo, liq.Estado, liq.FechaGeneracion,
		liq.TotalMinutos, liq.TotalImporte, liq.CreatedAt, liq.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert liquidacion: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID, sin detalles.
func (r *LiquidacionRepo) GetByID(id string) (*entity.Liquidacion, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+liquidacionColumnas+` FROM liquidaciones WHERE id = $1`, id)
	return scanLiquidacion(row)
}

// GetByPeriodo obtiene el lote de un período, sin detalles.
func (r *LiquidacionRepo) GetByPeriodo(periodo string) (*entity.Liquidacion, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+liquidacionColumnas+` FROM liquidaciones WHERE periodo = $1`, periodo)
	return scanLiquidacion(row)
}

// List lista lotes con paginación, del período más reciente al más viejo.
func (r *LiquidacionRepo) List(limit, offset int) ([]*entity.Liquidacion, error) {
	query := `
		SELECT ` + liquidacionColumnas + ` FROM liquidaciones
		ORDER BY periodo DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list liquidaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Liquidacion
	for rows.Next() {
		var l entity.Liquidacion
		if err := rows.Scan(&l.ID, &l.Periodo, &l.Estado, &l.FechaGeneracion, &l.TotalMinutos, &l.TotalImporte, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan liquidacion: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de un lote.
func (r *LiquidacionRepo) Update(liq *entity.Liquidacion) error {
	query := `
		UPDATE liquidaciones
		SET estado = $2, fecha_generacion = $3, total_minutos = $4, total_importe = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		liq.ID, liq.Estado, liq.FechaGeneracion, liq.TotalMinutos, liq.TotalImporte, liq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update liquidacion: %w", err)
	}
	return nil
}

// CreateDetalle persiste una fila del lote.
func (r *LiquidacionRepo) CreateDetalle(det *entity.LiquidacionDetalle) error {
	query := `
		INSERT INTO liquidacion_detalles (id, liquidacion_id, incidente_id, guardia_id, usuario, fecha, minutos, importe)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		det.ID, det.LiquidacionID, det.IncidenteID, det.GuardiaID,
		det.Usuario, det.Fecha, det.Minutos, det.Importe,
	)
	if err != nil {
		return fmt.Errorf("insert detalle de liquidacion: %w", err)
	}
	return nil
}

// DeleteDetalles elimina todos los detalles del lote (regeneración atómica).
func (r *LiquidacionRepo) DeleteDetalles(liquidacionID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM liquidacion_detalles WHERE liquidacion_id = $1`, liquidacionID)
	if err != nil {
		return fmt.Errorf("delete detalles de liquidacion: %w", err)
	}
	return nil
}

// ListDetalles lista los detalles de un lote ordenados por titular y fecha.
func (r *LiquidacionRepo) ListDetalles(liquidacionID string) ([]*entity.LiquidacionDetalle, error) {
	query := `
		SELECT id, liquidacion_id, incidente_id, guardia_id, usuario, fecha, minutos, importe
		FROM liquidacion_detalles WHERE liquidacion_id = $1 ORDER BY usuario, fecha, incidente_id`
	rows, err := r.q.Query(context.Background(), query, liquidacionID)
	if err != nil {
		return nil, fmt.Errorf("list detalles de liquidacion: %w", err)
	}
	defer rows.Close()
	var list []*entity.LiquidacionDetalle
	for rows.Next() {
		var d entity.LiquidacionDetalle
		if err := rows.Scan(&d.ID, &d.LiquidacionID, &d.IncidenteID, &d.GuardiaID, &d.Usuario, &d.Fecha, &d.Minutos, &d.Importe); err != nil {
			return nil, fmt.Errorf("scan detalle de liquidacion: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func scanLiquidacion(row pgx.Row) (*entity.Liquidacion, error) {
	var l entity.Liquidacion
	err := row.Scan(&l.ID, &l.Periodo, &l.Estado, &l.FechaGeneracion, &l.TotalMinutos, &l.TotalImporte, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan liquidacion: %w", err)
	}
	return &l, nil
}
