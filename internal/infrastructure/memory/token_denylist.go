package memory

import (
	"context"
	"sync"
	"time"
)

// TokenDenylist lista de IDs de token revocados, usada cuando no hay Redis configurado.
// Las entradas vencidas se purgan en cada Revoke.
type TokenDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewTokenDenylist crea una lista vacía.
func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke marca tokenID como revocado hasta expiresAt.
func (d *TokenDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for id, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, id)
		}
	}
	if now.Before(expiresAt) {
		d.entries[tokenID] = expiresAt
	}
	return nil
}

// IsRevoked informa si tokenID sigue revocado.
func (d *TokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[tokenID]
	return ok && d.now().Before(exp), nil
}
