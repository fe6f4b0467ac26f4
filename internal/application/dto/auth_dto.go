package dto

import "time"

// LoginRequest credenciales del empleado.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso y datos básicos del empleado.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Empleado  EmpleadoResponse `json:"empleado"`
}
