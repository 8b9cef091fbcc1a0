package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para Sale. Las ventas no se modifican ni se borran.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Sale, error)
}
