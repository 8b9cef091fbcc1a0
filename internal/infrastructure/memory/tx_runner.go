package memory

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ store.TxRunner = (*TxRunner)(nil)

// TxRunner serializa la función bajo el lock de escritura y, si devuelve error,
// restaura el estado previo.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner sobre db.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repos de productos y ventas atados a la "transacción".
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.atomic(ctx, func(g guard) error {
		return fn(&ProductRepo{g}, &SaleRepo{g})
	})
}

// RunStaff ejecuta fn con repos de personal y credenciales.
func (r *TxRunner) RunStaff(ctx context.Context, fn func(
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.atomic(ctx, func(g guard) error {
		return fn(&StaffRepo{g}, &UserRepo{g})
	})
}

// View ejecuta fn bajo el lock de lectura; las escrituras esperan a que termine.
func (r *TxRunner) View(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	debtRepo repository.DebtRepository,
	staffRepo repository.StaffRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	g := guard{db: r.db, inTx: true}
	return fn(&ProductRepo{g}, &SaleRepo{g}, &DebtRepo{g}, &StaffRepo{g})
}

func (r *TxRunner) atomic(ctx context.Context, fn func(g guard) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	saved := r.db.save()
	if err := fn(guard{db: r.db, inTx: true}); err != nil {
		r.db.restore(saved)
		return err
	}
	return nil
}
