package memory

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	guard
}

// NewProductRepository construye el repositorio sobre db.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{guard{db: db}}
}

// Create agrega el producto al final (orden de inserción).
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.write()()
	for _, p := range r.db.products {
		if p.ID == product.ID {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.db.products = append(r.db.products, &cp)
	return nil
}

// GetByID devuelve una copia o (nil, nil).
func (r *ProductRepo) GetByID(_ context.Context, businessID, id string) (*entity.Product, error) {
	defer r.read()()
	for _, p := range r.db.products {
		if p.ID == id && p.BusinessID == businessID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// Update reemplaza el producto; ErrNotFound si no existe.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.write()()
	for i, p := range r.db.products {
		if p.ID == product.ID && p.BusinessID == product.BusinessID {
			cp := *product
			r.db.products[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete elimina el producto si existe.
func (r *ProductRepo) Delete(_ context.Context, businessID, id string) error {
	defer r.write()()
	out := make([]*entity.Product, 0, len(r.db.products))
	for _, p := range r.db.products {
		if p.ID == id && p.BusinessID == businessID {
			continue
		}
		out = append(out, p)
	}
	r.db.products = out
	return nil
}

// ListByBusiness lista en orden de inserción.
func (r *ProductRepo) ListByBusiness(_ context.Context, businessID string) ([]*entity.Product, error) {
	defer r.read()()
	list := make([]*entity.Product, 0)
	for _, p := range r.db.products {
		if p.BusinessID == businessID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}
