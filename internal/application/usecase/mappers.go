package usecase

import (
	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:              c.ID,
		PersonaResponse: dto.NewPersonaResponse(c.Persona),
		Estado:          c.Estado,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:              p.ID,
		PersonaResponse: dto.NewPersonaResponse(p.Persona),
		RazonSocial:     p.RazonSocial,
		NombreComercial: p.NombreComercial(),
		Contacto:        p.Contacto,
		Estado:          p.Estado,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToEmpleadoResponse se exporta para que auth arme la respuesta de login.
func ToEmpleadoResponse(e *entity.Empleado) *dto.EmpleadoResponse {
	return &dto.EmpleadoResponse{
		ID:              e.ID,
		PersonaResponse: dto.NewPersonaResponse(e.Persona),
		Cargo:           e.Cargo,
		Rol:             e.Rol,
		Estado:          e.Estado,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Estado:      c.Estado,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:              p.ID,
		CategoriaID:     p.CategoriaID,
		Codigo:          p.Codigo,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		PrecioVenta:     p.PrecioVenta,
		Costo:           p.Costo,
		TasaImpuesto:    p.TasaImpuesto,
		Stock:           p.Stock,
		StockMinimo:     p.StockMinimo,
		BajoStockMinimo: p.BajoStockMinimo(),
		Estado:          p.Estado,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
