package dto

import "time"

// CreateStaffRequest alta de un empleado con su credencial.
type CreateStaffRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	RoleLabel string `json:"role" validate:"max=100"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UpdateStaffStatusRequest activar/desactivar.
type UpdateStaffStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// ResetStaffPasswordRequest nueva contraseña del empleado.
type ResetStaffPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// StaffResponse salida de un empleado (nunca incluye la contraseña).
type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleLabel string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
