package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProfileRepository = (*UserRepo)(nil)
)

// UserRepo credenciales y perfiles en memoria. El email se compara sin distinguir mayúsculas.
type UserRepo struct {
	guard
}

// NewUserRepository construye el repositorio.
func NewUserRepository(db *DB) *UserRepo {
	return &UserRepo{guard{db: db}}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	defer r.write()()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.db.users = append(r.db.users, &cp)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.read()()
	for _, u := range r.db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.read()()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(u *entity.User) { u.PasswordHash = passwordHash })
}

func (r *UserRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.update(id, func(u *entity.User) { u.Status = status })
}

func (r *UserRepo) update(id string, fn func(u *entity.User)) error {
	defer r.write()()
	for i, u := range r.db.users {
		if u.ID == id {
			cp := *u
			fn(&cp)
			cp.UpdatedAt = time.Now()
			r.db.users[i] = &cp
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// GetProfile lee el perfil desde el usuario; (nil, nil) si no existe.
func (r *UserRepo) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	return &entity.Profile{
		UserID:       u.ID,
		BusinessID:   u.BusinessID,
		Role:         u.Role,
		BusinessName: u.BusinessName,
		Status:       u.Status,
	}, nil
}
