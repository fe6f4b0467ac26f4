// Package modelos expone los registros del sistema de ventas e inventario para
// código fuera del módulo. Son alias: el comportamiento vive en internal/domain/entity.
package modelos

import "github.com/jhoicas/gestion-ventas/internal/domain/entity"

type (
	Persona       = entity.Persona
	Cliente       = entity.Cliente
	Proveedor     = entity.Proveedor
	Empleado      = entity.Empleado
	Categoria     = entity.Categoria
	Producto      = entity.Producto
	Venta         = entity.Venta
	DetalleVenta  = entity.DetalleVenta
	Compra        = entity.Compra
	DetalleCompra = entity.DetalleCompra
)
