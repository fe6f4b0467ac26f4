package dto

import "github.com/jhoicas/gestion-ventas/internal/domain/entity"

// PersonaRequest datos de identificación y contacto comunes a clientes, proveedores y empleados.
type PersonaRequest struct {
	TipoDocumento   string `json:"tipo_documento" validate:"required,oneof=CC NIT CE PAS"`
	NumeroDocumento string `json:"numero_documento" validate:"required,max=30"`
	Nombres         string `json:"nombres" validate:"required,max=150"`
	Apellidos       string `json:"apellidos" validate:"max=150"`
	Telefono        string `json:"telefono" validate:"max=30"`
	Email           string `json:"email" validate:"omitempty,email,max=150"`
	Direccion       string `json:"direccion" validate:"max=250"`
}

// ToEntity construye la Persona normalizada.
func (r PersonaRequest) ToEntity() entity.Persona {
	p := entity.Persona{
		TipoDocumento:   r.TipoDocumento,
		NumeroDocumento: r.NumeroDocumento,
		Nombres:         r.Nombres,
		Apellidos:       r.Apellidos,
		Telefono:        r.Telefono,
		Email:           r.Email,
		Direccion:       r.Direccion,
	}
	p.Normalizar()
	return p
}

// PersonaUpdate campos opcionales de Persona para actualizaciones parciales.
type PersonaUpdate struct {
	TipoDocumento   *string `json:"tipo_documento" validate:"omitempty,oneof=CC NIT CE PAS"`
	NumeroDocumento *string `json:"numero_documento" validate:"omitempty,max=30"`
	Nombres         *string `json:"nombres" validate:"omitempty,min=1,max=150"`
	Apellidos       *string `json:"apellidos" validate:"omitempty,max=150"`
	Telefono        *string `json:"telefono" validate:"omitempty,max=30"`
	Email           *string `json:"email" validate:"omitempty,email,max=150"`
	Direccion       *string `json:"direccion" validate:"omitempty,max=250"`
}

// Aplicar copia sobre p los campos presentes y normaliza.
func (u PersonaUpdate) Aplicar(p *entity.Persona) {
	if u.TipoDocumento != nil {
		p.TipoDocumento = *u.TipoDocumento
	}
	if u.NumeroDocumento != nil {
		p.NumeroDocumento = *u.NumeroDocumento
	}
	if u.Nombres != nil {
		p.Nombres = *u.Nombres
	}
	if u.Apellidos != nil {
		p.Apellidos = *u.Apellidos
	}
	if u.Telefono != nil {
		p.Telefono = *u.Telefono
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Direccion != nil {
		p.Direccion = *u.Direccion
	}
	p.Normalizar()
}

// PersonaResponse salida de los datos de Persona.
type PersonaResponse struct {
	TipoDocumento   string `json:"tipo_documento"`
	NumeroDocumento string `json:"numero_documento"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	NombreCompleto  string `json:"nombre_completo"`
	Telefono        string `json:"telefono"`
	Email           string `json:"email"`
	Direccion       string `json:"direccion"`
}

// NewPersonaResponse mapea la entidad.
func NewPersonaResponse(p entity.Persona) PersonaResponse {
	return PersonaResponse{
		TipoDocumento:   p.TipoDocumento,
		NumeroDocumento: p.NumeroDocumento,
		Nombres:         p.Nombres,
		Apellidos:       p.Apellidos,
		NombreCompleto:  p.NombreCompleto(),
		Telefono:        p.Telefono,
		Email:           p.Email,
		Direccion:       p.Direccion,
	}
}
