package entity

import "time"

// Session identidad autenticada del usuario actual y su contexto de negocio.
type Session struct {
	UserID        string
	BusinessID    string
	Email         string
	Role          string
	BusinessName  string
	TokenID       string
	ExpiresAt     time.Time
	Authenticated bool
}
