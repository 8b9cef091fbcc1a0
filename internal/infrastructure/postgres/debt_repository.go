package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

// DebtRepo acreedores y deudores (tabla debts, columna type).
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador.
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

func (r *DebtRepo) Create(ctx context.Context, d *entity.Debt) error {
	due, err := parseDate(d.DueDate)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO debts (id, business_id, type, name, amount, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.BusinessID, d.Type, d.Name, d.Amount, due, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

func (r *DebtRepo) Delete(ctx context.Context, businessID, debtType, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM debts WHERE business_id = $1 AND type = $2 AND id = $3`, businessID, debtType, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}

func (r *DebtRepo) ListByBusiness(ctx context.Context, businessID, debtType string) ([]*entity.Debt, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, business_id, type, name, amount, due_date, created_at
		FROM debts WHERE business_id = $1 AND type = $2 ORDER BY seq`, businessID, debtType)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Debt, 0)
	for rows.Next() {
		var d entity.Debt
		var due *time.Time
		if err := rows.Scan(&d.ID, &d.BusinessID, &d.Type, &d.Name, &d.Amount, &due, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		d.DueDate = formatDate(due)
		list = append(list, &d)
	}
	return list, rows.Err()
}
