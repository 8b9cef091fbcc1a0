// Package subscription gestiona el plan del negocio: prueba de 30 días al registrarse
// y activación por 30 días tras cada pago.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

const period = entity.SubscriptionPeriodDays * 24 * time.Hour

// UseCase casos de uso de suscripción.
type UseCase struct {
	repo repository.SubscriptionRepository
	log  *logger.Logger
	now  func() time.Time
}

// New construye el caso de uso. log nil = Nop.
func New(repo repository.SubscriptionRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// StartTrial crea la suscripción de prueba contada desde since si el negocio aún no tiene una.
// Es idempotente: el login la usa para reparar registros que quedaron sin prueba.
func (uc *UseCase) StartTrial(ctx context.Context, businessID string, since time.Time) error {
	existing, err := uc.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	sub := &entity.Subscription{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Status:     entity.SubscriptionTrial,
		StartDate:  since,
		EndDate:    since.Add(period),
		CreatedAt:  uc.now(),
	}
	if err := uc.repo.Upsert(ctx, sub); err != nil {
		return fmt.Errorf("iniciar prueba: %w", err)
	}
	uc.log.Info().Str("business_id", businessID).Time("end_date", sub.EndDate).Msg("prueba iniciada")
	return nil
}

// Get estado actual; ErrNotFound si el negocio no tiene suscripción.
func (uc *UseCase) Get(ctx context.Context, businessID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(sub), nil
}

// Activate marca el plan como activo por 30 días desde ahora.
func (uc *UseCase) Activate(ctx context.Context, businessID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if sub == nil {
		sub = &entity.Subscription{ID: uuid.New().String(), BusinessID: businessID, CreatedAt: now}
	}
	sub.Status = entity.SubscriptionActive
	sub.StartDate = now
	sub.EndDate = now.Add(period)
	if err := uc.repo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("activar suscripción: %w", err)
	}
	uc.log.Info().Str("business_id", businessID).Time("end_date", sub.EndDate).Msg("suscripción activada")
	return uc.toResponse(sub), nil
}

// IsActive informa si el negocio tiene una prueba o plan vigente. Sin suscripción = false.
func (uc *UseCase) IsActive(ctx context.Context, businessID string) (bool, error) {
	sub, err := uc.repo.GetByBusiness(ctx, businessID)
	if err != nil {
		return false, err
	}
	if sub == nil {
		return false, nil
	}
	return sub.EffectiveStatus(uc.now()) != entity.SubscriptionExpired, nil
}

func (uc *UseCase) toResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	now := uc.now()
	return &dto.SubscriptionResponse{
		Status:        s.EffectiveStatus(now),
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		DaysRemaining: s.DaysRemaining(now),
	}
}
