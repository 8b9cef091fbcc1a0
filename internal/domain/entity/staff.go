package entity

import "time"

// Estados válidos de un miembro del personal.
const (
	StaffActive   = "active"
	StaffInactive = "inactive"
)

// StaffMember representa un empleado del negocio. Su ID coincide con el del User
// (credencial) creado junto con él; la contraseña nunca se guarda aquí.
type StaffMember struct {
	ID         string
	BusinessID string
	Name       string
	Email      string
	RoleLabel  string // cajero, vendedor, bodega... etiqueta libre
	Status     string // active, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidStaffStatus informa si el estado es uno de los admitidos.
func ValidStaffStatus(s string) bool {
	return s == StaffActive || s == StaffInactive
}
