package dto

import "time"

// SubscriptionResponse estado del plan del negocio.
type SubscriptionResponse struct {
	Status        string    `json:"status"` // trial, active, expired
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
}
