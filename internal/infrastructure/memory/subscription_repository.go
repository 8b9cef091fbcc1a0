package memory

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo una suscripción por negocio.
type SubscriptionRepo struct {
	guard
}

// NewSubscriptionRepository construye el repositorio.
func NewSubscriptionRepository(db *DB) *SubscriptionRepo {
	return &SubscriptionRepo{guard{db: db}}
}

func (r *SubscriptionRepo) GetByBusiness(_ context.Context, businessID string) (*entity.Subscription, error) {
	defer r.read()()
	s, ok := r.db.subscriptions[businessID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SubscriptionRepo) Upsert(_ context.Context, sub *entity.Subscription) error {
	defer r.write()()
	cp := *sub
	r.db.subscriptions[sub.BusinessID] = &cp
	return nil
}
