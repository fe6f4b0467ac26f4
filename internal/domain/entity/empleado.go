package entity

import "time"

// Roles válidos para Empleado.
const (
	RolAdmin     = "admin"
	RolVendedor  = "vendedor"
	RolBodeguero = "bodeguero"
)

// Empleado representa a un usuario interno del sistema. Es quien inicia sesión
// y quien queda registrado en ventas, compras y movimientos de inventario.
type Empleado struct {
	ID string
	Persona
	Cargo        string
	Rol          string // admin, vendedor, bodeguero
	PasswordHash string // bcrypt, nunca el texto plano
	Estado       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RolValido indica si r es uno de los roles soportados.
func RolValido(r string) bool {
	switch r {
	case RolAdmin, RolVendedor, RolBodeguero:
		return true
	}
	return false
}

// Activo indica si el empleado puede operar.
func (e *Empleado) Activo() bool { return e.Estado == EstadoActivo }

// PuedeVender: admin y vendedor.
func (e *Empleado) PuedeVender() bool {
	return e.Activo() && (e.Rol == RolAdmin || e.Rol == RolVendedor)
}

// PuedeComprar: admin y bodeguero.
func (e *Empleado) PuedeComprar() bool {
	return e.Activo() && (e.Rol == RolAdmin || e.Rol == RolBodeguero)
}

// PuedeAnular: solo admin activo anula ventas y compras.
func (e *Empleado) PuedeAnular() bool {
	return e.Activo() && e.Rol == RolAdmin
}
