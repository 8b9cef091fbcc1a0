// Package redis guarda la lista de tokens revocados en Redis para que el logout
// se respete entre réplicas y reinicios.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/salesflow-api/internal/application/auth"
	"github.com/jhoicas/salesflow-api/pkg/config"
)

var _ auth.TokenDenylist = (*TokenDenylist)(nil)

const keyPrefix = "salesflow:revoked:"

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// TokenDenylist implementación de auth.TokenDenylist sobre Redis.
// Cada jti revocado es una clave con TTL hasta la expiración del token.
type TokenDenylist struct {
	client goredis.Cmdable
	now    func() time.Time
}

// NewTokenDenylist construye la lista sobre un cliente existente.
func NewTokenDenylist(client goredis.Cmdable) *TokenDenylist {
	return &TokenDenylist{client: client, now: time.Now}
}

// Revoke guarda tokenID hasta expiresAt. Tokens ya vencidos no se guardan.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, Key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsRevoked informa si tokenID está en la lista.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, Key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Key clave de Redis para un jti.
func Key(tokenID string) string {
	return keyPrefix + tokenID
}
