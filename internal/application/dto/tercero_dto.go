package dto

import "time"

// CreateClienteRequest entrada para crear un cliente.
type CreateClienteRequest struct {
	PersonaRequest
}

// UpdateClienteRequest actualización parcial de un cliente.
type UpdateClienteRequest struct {
	PersonaUpdate
	Estado *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID string `json:"id"`
	PersonaResponse
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClienteListResponse lista paginada de clientes.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateProveedorRequest entrada para crear un proveedor.
type CreateProveedorRequest struct {
	PersonaRequest
	RazonSocial string `json:"razon_social" validate:"max=200"`
	Contacto    string `json:"contacto" validate:"max=150"`
}

// UpdateProveedorRequest actualización parcial de un proveedor.
type UpdateProveedorRequest struct {
	PersonaUpdate
	RazonSocial *string `json:"razon_social" validate:"omitempty,max=200"`
	Contacto    *string `json:"contacto" validate:"omitempty,max=150"`
	Estado      *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID string `json:"id"`
	PersonaResponse
	RazonSocial     string    `json:"razon_social"`
	NombreComercial string    `json:"nombre_comercial"`
	Contacto        string    `json:"contacto"`
	Estado          string    `json:"estado"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProveedorListResponse lista paginada de proveedores.
type ProveedorListResponse struct {
	Items []ProveedorResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateEmpleadoRequest entrada para crear un empleado. El email es obligatorio: es el usuario de acceso.
type CreateEmpleadoRequest struct {
	PersonaRequest
	Cargo    string `json:"cargo" validate:"max=100"`
	Rol      string `json:"rol" validate:"required,oneof=admin vendedor bodeguero"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateEmpleadoRequest actualización parcial de un empleado.
type UpdateEmpleadoRequest struct {
	PersonaUpdate
	Cargo    *string `json:"cargo" validate:"omitempty,max=100"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=admin vendedor bodeguero"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Estado   *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// EmpleadoResponse salida de un empleado (nunca incluye el hash).
type EmpleadoResponse struct {
	ID string `json:"id"`
	PersonaResponse
	Cargo     string    `json:"cargo"`
	Rol       string    `json:"rol"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmpleadoListResponse lista paginada de empleados.
type EmpleadoListResponse struct {
	Items []EmpleadoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
