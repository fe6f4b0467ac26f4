package entity

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/jhoicas/gestion-ventas/internal/domain"
)

// Tipos de documento de identificación.
const (
	DocumentoCC  = "CC"  // cédula de ciudadanía
	DocumentoNIT = "NIT" // número de identificación tributaria
	DocumentoCE  = "CE"  // cédula de extranjería
	DocumentoPAS = "PAS" // pasaporte
)

// Estados comunes de terceros y catálogo.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Persona agrupa los datos de identificación y contacto compartidos por
// Cliente, Proveedor y Empleado. Se embebe en cada uno de ellos.
type Persona struct {
	TipoDocumento   string
	NumeroDocumento string
	Nombres         string
	Apellidos       string // vacío para personas jurídicas
	Telefono        string
	Email           string
	Direccion       string
}

// NombreCompleto devuelve nombres y apellidos separados por un espacio.
func (p Persona) NombreCompleto() string {
	return strings.TrimSpace(p.Nombres + " " + p.Apellidos)
}

// Validar revisa los campos obligatorios y el formato del email.
func (p Persona) Validar() error {
	if !TipoDocumentoValido(p.TipoDocumento) {
		return fmt.Errorf("%w: tipo_documento %q", domain.ErrInvalidInput, p.TipoDocumento)
	}
	if strings.TrimSpace(p.NumeroDocumento) == "" {
		return fmt.Errorf("%w: numero_documento requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Nombres) == "" {
		return fmt.Errorf("%w: nombres requerido", domain.ErrInvalidInput)
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("%w: email %q", domain.ErrInvalidInput, p.Email)
		}
	}
	return nil
}

// Normalizar recorta espacios y pasa el tipo de documento a mayúsculas.
func (p *Persona) Normalizar() {
	p.TipoDocumento = strings.ToUpper(strings.TrimSpace(p.TipoDocumento))
	p.NumeroDocumento = strings.TrimSpace(p.NumeroDocumento)
	p.Nombres = strings.TrimSpace(p.Nombres)
	p.Apellidos = strings.TrimSpace(p.Apellidos)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
}

// TipoDocumentoValido indica si t es uno de los tipos soportados.
func TipoDocumentoValido(t string) bool {
	switch t {
	case DocumentoCC, DocumentoNIT, DocumentoCE, DocumentoPAS:
		return true
	}
	return false
}
