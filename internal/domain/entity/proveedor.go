package entity

import "time"

// Proveedor representa a quien abastece la mercancía (compras).
type Proveedor struct {
	ID string
	Persona
	RazonSocial string
	Contacto    string // persona de contacto en el proveedor
	Estado      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NombreComercial devuelve la razón social o, si no hay, el nombre de la persona.
func (p *Proveedor) NombreComercial() string {
	if p.RazonSocial != "" {
		return p.RazonSocial
	}
	return p.NombreCompleto()
}

// Activo indica si se le pueden registrar compras.
func (p *Proveedor) Activo() bool { return p.Estado == EstadoActivo }
