package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo una fila por negocio (business_id UNIQUE).
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

func (r *SubscriptionRepo) GetByBusiness(ctx context.Context, businessID string) (*entity.Subscription, error) {
	var s entity.Subscription
	err := r.q.QueryRow(ctx, `
		SELECT id, business_id, status, start_date, end_date, created_at
		FROM subscriptions WHERE business_id = $1`, businessID,
	).Scan(&s.ID, &s.BusinessID, &s.Status, &s.StartDate, &s.EndDate, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepo) Upsert(ctx context.Context, s *entity.Subscription) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscriptions (id, business_id, status, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (business_id) DO UPDATE
		SET status = EXCLUDED.status, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date`,
		s.ID, s.BusinessID, s.Status, s.StartDate, s.EndDate, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}
