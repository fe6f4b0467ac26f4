// Package ventas registra, consulta y anula ventas con su efecto sobre el inventario.
package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/inventario"
	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	tx        repository.TxRunner
	ventas    repository.VentaRepository
	clientes  repository.ClienteRepository
	empleados repository.EmpleadoRepository
	productos repository.ProductoRepository
	cache     ports.ProductoCache
	pdf       ports.ComprobanteGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. productos puede ser el repositorio con caché.
func NewUseCase(
	tx repository.TxRunner,
	ventas repository.VentaRepository,
	clientes repository.ClienteRepository,
	empleados repository.EmpleadoRepository,
	productos repository.ProductoRepository,
	cache ports.ProductoCache,
	pdf ports.ComprobanteGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:        tx,
		ventas:    ventas,
		clientes:  clientes,
		empleados: empleados,
		productos: productos,
		cache:     cache,
		pdf:       pdf,
		log:       log.Named("ventas"),
		now:       time.Now,
	}
}

// Registrar crea la venta y descuenta el stock de cada línea en una sola transacción.
// Si algún producto no alcanza, no se guarda nada (ErrInsufficientStock).
func (uc *UseCase) Registrar(ctx context.Context, empleadoID string, in dto.CreateVentaRequest) (*dto.VentaResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	empleado, err := uc.empleados.GetByID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.PuedeVender() {
		return nil, fmt.Errorf("%w: el empleado no puede registrar ventas", domain.ErrForbidden)
	}
	cliente, err := uc.clientes.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClienteID)
	}
	if !cliente.Activo() {
		return nil, fmt.Errorf("%w: cliente %s inactivo", domain.ErrInvalidInput, in.ClienteID)
	}

	now := uc.now()
	fecha := now
	if in.Fecha != nil && !in.Fecha.IsZero() {
		fecha = *in.Fecha
	}
	venta := entity.NuevaVenta(cliente.ID, empleado.ID, fecha)
	venta.Observaciones = in.Observaciones
	venta.CreatedAt, venta.UpdatedAt = now, now

	// Validación de productos y precios fuera de la tx (solo lectura, puede venir del caché)
	for _, item := range in.Items {
		producto, err := uc.productos.GetByID(ctx, item.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.ProductoID)
		}
		if !producto.Activo() {
			return nil, fmt.Errorf("%w: producto %s inactivo", domain.ErrInvalidInput, producto.Codigo)
		}
		precio := producto.PrecioVenta
		if item.PrecioUnitario != nil {
			precio = *item.PrecioUnitario
		}
		if err := venta.AgregarDetalle(producto.ID, item.Cantidad, precio, producto.TasaImpuesto); err != nil {
			return nil, err
		}
	}

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		n, err := r.Ventas.NextNumero(ctx)
		if err != nil {
			return err
		}
		venta.Numero = fmt.Sprintf("V-%06d", n)
		for _, d := range venta.Detalles {
			_, err := inventario.RegistrarSalidaEnTx(ctx, r, entity.MovimientoSalida, inventario.Movimiento{
				ProductoID: d.ProductoID,
				Cantidad:   d.Cantidad,
				Referencia: venta.ID,
				Motivo:     "venta " + venta.Numero,
				EmpleadoID: empleado.ID,
				Fecha:      now,
			})
			if err != nil {
				return err
			}
		}
		return r.Ventas.Create(ctx, venta)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, productoIDs(venta)...)
	uc.log.Info().
		Str("venta", venta.Numero).
		Str("cliente_id", venta.ClienteID).
		Str("total", venta.Total.String()).
		Int("lineas", len(venta.Detalles)).
		Msg("venta registrada")
	return ToVentaResponse(venta), nil
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.Venta, error) {
	venta, err := uc.ventas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return venta, nil
}

// Obtener devuelve la venta con sus líneas.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.VentaResponse, error) {
	venta, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToVentaResponse(venta), nil
}

// Listar devuelve cabeceras filtradas por cliente, estado y rango de fechas.
func (uc *UseCase) Listar(ctx context.Context, in dto.VentaFiltroRequest) (*dto.VentaListResponse, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, err
	}
	filtro := repository.VentaFiltro{ClienteID: in.ClienteID, Estado: in.Estado, Desde: desde, Hasta: hasta}
	list, err := uc.ventas.List(ctx, filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *ToVentaResponse(v))
	}
	return &dto.VentaListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// Anular pasa la venta a ANULADA y devuelve al inventario lo vendido, al costo promedio vigente.
func (uc *UseCase) Anular(ctx context.Context, empleadoID, id string) (*dto.VentaResponse, error) {
	empleado, err := uc.empleados.GetByID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.PuedeAnular() {
		return nil, fmt.Errorf("%w: el empleado no puede anular ventas", domain.ErrForbidden)
	}
	var venta *entity.Venta
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		venta, err = r.Ventas.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if venta == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
		}
		now := uc.now()
		if err := venta.Anular(now); err != nil {
			return err
		}
		for _, d := range venta.Detalles {
			_, err := inventario.RegistrarEntradaEnTx(ctx, r, entity.MovimientoEntrada, inventario.Movimiento{
				ProductoID: d.ProductoID,
				Cantidad:   d.Cantidad,
				Referencia: venta.ID,
				Motivo:     "anulación venta " + venta.Numero,
				EmpleadoID: empleadoID,
				Fecha:      now,
			})
			if err != nil {
				return err
			}
		}
		return r.Ventas.UpdateEstado(ctx, venta)
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, productoIDs(venta)...)
	uc.log.Info().Str("venta", venta.Numero).Str("empleado_id", empleadoID).Msg("venta anulada")
	return ToVentaResponse(venta), nil
}

// ComprobantePDF genera el comprobante de la venta. Devuelve bytes y nombre de archivo.
func (uc *UseCase) ComprobantePDF(ctx context.Context, id string) ([]byte, string, error) {
	venta, err := uc.get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	cliente, err := uc.clientes.GetByID(ctx, venta.ClienteID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener cliente: %w", err)
	}
	if cliente == nil {
		return nil, "", fmt.Errorf("%w: cliente %s de la venta %s", domain.ErrNotFound, venta.ClienteID, venta.Numero)
	}
	empleado, err := uc.empleados.GetByID(ctx, venta.EmpleadoID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener empleado: %w", err)
	}

	lineas := make([]ports.LineaComprobante, 0, len(venta.Detalles))
	for _, d := range venta.Detalles {
		l := ports.LineaComprobante{DetalleVenta: *d, Codigo: "-", Nombre: "Producto " + d.ProductoID}
		if p, err := uc.productos.GetByID(ctx, d.ProductoID); err == nil && p != nil {
			l.Codigo, l.Nombre = p.Codigo, p.Nombre
		}
		lineas = append(lineas, l)
	}

	out, err := uc.pdf.GenerarComprobanteVenta(ctx, ports.ComprobanteVenta{
		Venta:    venta,
		Cliente:  cliente,
		Empleado: empleado,
		Lineas:   lineas,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: %w", err)
	}
	return out, fmt.Sprintf("venta_%s.pdf", venta.Numero), nil
}

func productoIDs(v *entity.Venta) []string {
	ids := make([]string, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		ids = append(ids, d.ProductoID)
	}
	return ids
}

// ToVentaResponse mapea la entidad a DTO.
func ToVentaResponse(v *entity.Venta) *dto.VentaResponse {
	out := &dto.VentaResponse{
		ID:            v.ID,
		Numero:        v.Numero,
		ClienteID:     v.ClienteID,
		EmpleadoID:    v.EmpleadoID,
		Fecha:         v.Fecha,
		Subtotal:      v.Subtotal,
		Impuesto:      v.Impuesto,
		Total:         v.Total,
		Estado:        v.Estado,
		Observaciones: v.Observaciones,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	for _, d := range v.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleVentaResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			TasaImpuesto:   d.TasaImpuesto,
			Subtotal:       d.Subtotal,
			ValorImpuesto:  d.ValorImpuesto,
			Total:          d.Total,
		})
	}
	return out
}
