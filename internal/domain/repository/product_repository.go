package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe. ListByBusiness respeta el orden de inserción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, businessID, id string) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Product, error)
}
