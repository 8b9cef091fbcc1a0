package entity

import (
	"math"
	"time"
)

// Estados de suscripción.
const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// SubscriptionPeriodDays duración del periodo de prueba y de cada pago.
const SubscriptionPeriodDays = 30

// Subscription plan del negocio.
type Subscription struct {
	ID         string
	BusinessID string
	Status     string
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
}

// EffectiveStatus devuelve expired si EndDate ya pasó, aunque la fila diga trial/active.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if !now.Before(s.EndDate) {
		return SubscriptionExpired
	}
	return s.Status
}

// DaysRemaining días restantes hasta EndDate, redondeando hacia arriba (0 si ya venció).
func (s *Subscription) DaysRemaining(now time.Time) int {
	if !now.Before(s.EndDate) {
		return 0
	}
	return int(math.Ceil(s.EndDate.Sub(now).Hours() / 24))
}
