package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ store.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El repo de productos bloquea la fila leída (SELECT ... FOR UPDATE) para que dos ventas
// concurrentes no descuenten el mismo stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		productRepo := &ProductRepo{q: tx, forUpdate: true}
		return fn(productRepo, NewSaleRepository(tx))
	})
}

// RunStaff crea credencial y ficha de personal en la misma transacción.
func (r *TxRunner) RunStaff(ctx context.Context, fn func(
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(NewStaffRepository(tx), NewUserRepository(tx))
	})
}

// View lee dentro de una transacción REPEATABLE READ de solo lectura: todas las consultas
// ven la misma foto de la base.
func (r *TxRunner) View(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	debtRepo repository.DebtRepository,
	staffRepo repository.StaffRepository,
) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	return r.inTx(ctx, opts, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewSaleRepository(tx), NewDebtRepository(tx), NewStaffRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, opts pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
