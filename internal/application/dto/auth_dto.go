package dto

import "time"

// SignUpRequest entrada para registro. Role vacío equivale a admin.
type SignUpRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"omitempty,oneof=admin staff"`
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
}

// SignInRequest entrada para login.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse sesión actual (sin datos sensibles).
type SessionResponse struct {
	UserID       string    `json:"user_id"`
	BusinessID   string    `json:"business_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	BusinessName string    `json:"business_name"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponse salida de signup y login.
type AuthResponse struct {
	Token                     string          `json:"token"`
	Session                   SessionResponse `json:"session"`
	EmailConfirmationRequired bool            `json:"email_confirmation_required"`
}
