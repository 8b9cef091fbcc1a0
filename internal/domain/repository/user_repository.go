package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// UserRepository almacén de credenciales (tabla users).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// ProfileRepository lectura del perfil (rol y nombre del negocio) de un usuario.
// Debe tolerar esquemas antiguos donde la columna se llama businessName en vez de business_name.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
}
