package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appguardias "github.com/guslozua/bitacora-api/internal/application/guardias"
	"github.com/guslozua/bitacora-api/internal/application/incidentes"
	"github.com/guslozua/bitacora-api/internal/application/liquidaciones"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

var _ incidentes.TxRunner = (*TxRunner)(nil)
var _ appguardias.TxRunner = (*TxRunner)(nil)
var _ liquidaciones.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de incidentes atado a la
// tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(incRepo repository.IncidenteRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewIncidenteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunGuardia inicia una transacción con repos de guardias e incidentes (baja
// en cascada).
func (r *TxRunner) RunGuardia(ctx context.Context, fn func(
	guardiaRepo repository.GuardiaRepository,
	incRepo repository.IncidenteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewGuardiaRepository(tx), NewIncidenteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLiquidacion inicia una transacción con repos de incidentes y
// liquidaciones (generación atómica del lote).
func (r *TxRunner) RunLiquidacion(ctx context.Context, fn func(
	incRepo repository.IncidenteRepository,
	liqRepo repository.LiquidacionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewIncidenteRepository(tx), NewLiquidacionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
