package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// DebtRepository puerto de persistencia para acreedores y deudores (tabla debts).
type DebtRepository interface {
	Create(ctx context.Context, debt *entity.Debt) error
	// Delete elimina el registro del tipo indicado; no falla si no existe.
	Delete(ctx context.Context, businessID, debtType, id string) error
	ListByBusiness(ctx context.Context, businessID, debtType string) ([]*entity.Debt, error)
}
