package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Estados de la credencial; coinciden con los del personal.
const (
	UserActive   = StaffActive
	UserInactive = StaffInactive
)

// User credencial y perfil de un usuario. Un admin es dueño de su negocio (BusinessID == ID);
// un usuario staff apunta al BusinessID del admin que lo creó.
type User struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, staff
	BusinessName string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile datos de perfil que la sesión necesita (tabla users).
type Profile struct {
	UserID       string
	BusinessID   string
	Role         string
	BusinessName string
	Status       string
}

// ValidRole informa si el rol es admin o staff.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff
}
