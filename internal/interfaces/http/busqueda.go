package http

import "github.com/jhoicas/gestion-ventas/internal/application/dto"

// busquedaQuery paginación más texto libre (?q=) para los listados de terceros.
type busquedaQuery struct {
	dto.PageRequest
	Q string `query:"q" validate:"max=100"`
}
