package entity

import "time"

// Cliente representa a una persona (natural o jurídica) a la que se le vende.
type Cliente struct {
	ID string
	Persona
	Estado    string // activo, inactivo
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activo indica si el cliente puede recibir ventas.
func (c *Cliente) Activo() bool { return c.Estado == EstadoActivo }
