// Package auth implementa la sesión de identidad: registro, login, logout,
// restauración de sesión y aviso de cambios a los suscriptores.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
	"github.com/jhoicas/salesflow-api/pkg/jwt"
	"github.com/jhoicas/salesflow-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenDenylist registro de tokens revocados (Redis o memoria).
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TrialStarter crea la suscripción de prueba de un negocio, contada desde since.
// Debe ser idempotente: no reinicia una suscripción existente.
type TrialStarter interface {
	StartTrial(ctx context.Context, businessID string, since time.Time) error
}

// Event tipo de cambio de sesión.
type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

// Listener recibe los cambios de sesión. No debe bloquear.
type Listener func(event Event, session entity.Session)

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	trials      TrialStarter
	denylist    TokenDenylist
	jwtCfg      JWTConfig
	hashCost    int
	log         *logger.Logger

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewAuthUseCase construye el caso de uso de auth. trials puede ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	trials TrialStarter,
	denylist TokenDenylist,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		trials:      trials,
		denylist:    denylist,
		jwtCfg:      jwtCfg,
		hashCost:    bcrypt.DefaultCost,
		log:         log,
		listeners:   make(map[int]Listener),
	}
}

// SetHashCost cambia el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) SetHashCost(cost int) {
	uc.hashCost = cost
}

// SignUp crea el usuario administrador de un negocio nuevo, inicia la prueba y abre sesión.
// Las cuentas staff las crea un administrador desde el módulo de personal.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	businessName := strings.TrimSpace(in.BusinessName)
	role := in.Role
	if role == "" {
		role = entity.RoleAdmin
	}
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, domain.Invalid("email", "no es un correo válido")
	case len(in.Password) < 8:
		return nil, domain.Invalid("password", "mínimo 8 caracteres")
	case businessName == "":
		return nil, domain.Invalid("business_name", "requerido")
	case role != entity.RoleAdmin:
		return nil, domain.Invalid("role", "las cuentas de personal las crea un administrador")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	id := uuid.New().String()
	user := &entity.User{
		ID:           id,
		BusinessID:   id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		BusinessName: businessName,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if uc.trials != nil {
		if err := uc.trials.StartTrial(ctx, user.BusinessID, now); err != nil {
			return nil, fmt.Errorf("crear prueba: %w", err)
		}
	}
	return uc.issue(user.ID, user.Email, &entity.Profile{
		UserID:       user.ID,
		BusinessID:   user.BusinessID,
		Role:         user.Role,
		BusinessName: user.BusinessName,
		Status:       user.Status,
	})
}

// SignIn verifica email/password y abre sesión. Credenciales malas = ErrUnauthorized;
// usuario inactivo = ErrForbidden.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := uc.profile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	// Un registro cuya prueba no llegó a crearse la recibe aquí, contada desde el alta.
	if uc.trials != nil && user.Role == entity.RoleAdmin {
		if err := uc.trials.StartTrial(ctx, user.BusinessID, user.CreatedAt); err != nil {
			uc.log.Warn().Err(err).Str("business_id", user.BusinessID).Msg("no se pudo asegurar la prueba")
		}
	}
	return uc.issue(user.ID, user.Email, profile)
}

// SignOut revoca el token hasta su expiración.
func (uc *AuthUseCase) SignOut(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	exp := time.Now()
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	if err := uc.denylist.Revoke(ctx, claims.ID, exp); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	uc.notify(EventSignedOut, entity.Session{
		UserID:     claims.UserID,
		BusinessID: claims.BusinessID,
		Role:       claims.Role,
		TokenID:    claims.ID,
		ExpiresAt:  exp,
	})
	return nil
}

// GetSession restaura la sesión desde el token. Expirado, revocado o inválido = ErrUnauthorized.
func (uc *AuthUseCase) GetSession(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	profile, err := uc.profile(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if profile.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}
	s := &entity.Session{
		UserID:        claims.UserID,
		BusinessID:    profile.BusinessID,
		Role:          profile.Role,
		BusinessName:  profile.BusinessName,
		TokenID:       claims.ID,
		Authenticated: true,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	if user, err := uc.userRepo.GetByID(ctx, claims.UserID); err == nil && user != nil {
		s.Email = user.Email
	}
	return s, nil
}

// OnSessionChange registra un listener; la función devuelta lo da de baja.
func (uc *AuthUseCase) OnSessionChange(l Listener) (unsubscribe func()) {
	uc.mu.Lock()
	id := uc.nextID
	uc.nextID++
	uc.listeners[id] = l
	uc.mu.Unlock()
	return func() {
		uc.mu.Lock()
		delete(uc.listeners, id)
		uc.mu.Unlock()
	}
}

func (uc *AuthUseCase) notify(e Event, s entity.Session) {
	uc.mu.RLock()
	ls := make([]Listener, 0, len(uc.listeners))
	for _, l := range uc.listeners {
		ls = append(ls, l)
	}
	uc.mu.RUnlock()
	for _, l := range ls {
		l(e, s)
	}
}

// profile lee el perfil; un usuario sin perfil no puede tener sesión.
func (uc *AuthUseCase) profile(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := uc.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("leer perfil: %w", err)
	}
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	return p, nil
}

func (uc *AuthUseCase) issue(userID, email string, p *entity.Profile) (*dto.AuthResponse, error) {
	tok, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Subject{
		UserID:     userID,
		BusinessID: p.BusinessID,
		Role:       p.Role,
	})
	if err != nil {
		return nil, err
	}
	s := entity.Session{
		UserID:        userID,
		BusinessID:    p.BusinessID,
		Email:         email,
		Role:          p.Role,
		BusinessName:  p.BusinessName,
		TokenID:       tok.ID,
		ExpiresAt:     tok.ExpiresAt,
		Authenticated: true,
	}
	uc.notify(EventSignedIn, s)
	return &dto.AuthResponse{Token: tok.Value, Session: ToSessionResponse(&s)}, nil
}

// ToSessionResponse DTO público de la sesión.
func ToSessionResponse(s *entity.Session) dto.SessionResponse {
	return dto.SessionResponse{
		UserID:       s.UserID,
		BusinessID:   s.BusinessID,
		Email:        s.Email,
		Role:         s.Role,
		BusinessName: s.BusinessName,
		ExpiresAt:    s.ExpiresAt,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
