package memory

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria (solo inserción).
type SaleRepo struct {
	guard
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(db *DB) *SaleRepo {
	return &SaleRepo{guard{db: db}}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.write()()
	cp := *sale
	r.db.sales = append(r.db.sales, &cp)
	return nil
}

func (r *SaleRepo) ListByBusiness(_ context.Context, businessID string) ([]*entity.Sale, error) {
	defer r.read()()
	list := make([]*entity.Sale, 0)
	for _, s := range r.db.sales {
		if s.BusinessID == businessID {
			cp := *s
			list = append(list, &cp)
		}
	}
	return list, nil
}
