package memory

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

// DebtRepo acreedores y deudores en memoria.
type DebtRepo struct {
	guard
}

// NewDebtRepository construye el repositorio.
func NewDebtRepository(db *DB) *DebtRepo {
	return &DebtRepo{guard{db: db}}
}

func (r *DebtRepo) Create(_ context.Context, debt *entity.Debt) error {
	defer r.write()()
	cp := *debt
	r.db.debts = append(r.db.debts, &cp)
	return nil
}

func (r *DebtRepo) Delete(_ context.Context, businessID, debtType, id string) error {
	defer r.write()()
	out := make([]*entity.Debt, 0, len(r.db.debts))
	for _, d := range r.db.debts {
		if d.ID == id && d.BusinessID == businessID && d.Type == debtType {
			continue
		}
		out = append(out, d)
	}
	r.db.debts = out
	return nil
}

func (r *DebtRepo) ListByBusiness(_ context.Context, businessID, debtType string) ([]*entity.Debt, error) {
	defer r.read()()
	list := make([]*entity.Debt, 0)
	for _, d := range r.db.debts {
		if d.BusinessID == businessID && d.Type == debtType {
			cp := *d
			list = append(list, &cp)
		}
	}
	return list, nil
}
