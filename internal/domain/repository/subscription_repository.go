package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// SubscriptionRepository una suscripción por negocio.
type SubscriptionRepository interface {
	GetByBusiness(ctx context.Context, businessID string) (*entity.Subscription, error)
	Upsert(ctx context.Context, sub *entity.Subscription) error
}
