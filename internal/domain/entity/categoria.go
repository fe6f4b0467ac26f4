package entity

import "time"

// Categoria clasifica los productos. El nombre es único.
type Categoria struct {
	ID          string
	Nombre      string
	Descripcion string
	Estado      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
