// Package compras registra compras a proveedores, su recepción en bodega y su anulación.
package compras

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

// UseCase casos de uso de compras.
type UseCase struct {
	tx          repository.TxRunner
	compras     repository.CompraRepository
	proveedores repository.ProveedorRepository
	empleados   repository.EmpleadoRepository
	productos   repository.ProductoRepository
	cache       ports.ProductoCache
	log         *logger.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx repository.TxRunner,
	compras repository.CompraRepository,
	proveedores repository.ProveedorRepository,
	empleados repository.EmpleadoRepository,
	productos repository.ProductoRepository,
	cache ports.ProductoCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:          tx,
		compras:     compras,
		proveedores: proveedores,
		empleados:   empleados,
		productos:   productos,
		cache:       cache,
		log:         log.Named("compras"),
		now:         time.Now,
	}
}

// Registrar guarda la compra en PENDIENTE. Con RecibirInmediato la recibe en la misma transacción.
func (uc *UseCase) Registrar(ctx context.Context, empleadoID string, in dto.CreateCompraRequest) (*dto.CompraResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la compra no tiene líneas", domain.ErrInvalidInput)
	}
	empleado, err := uc.empleado(ctx, empleadoID, "registrar compras", (*entity.Empleado).PuedeComprar)
	if err != nil {
		return nil, err
	}
	proveedor, err := uc.proveedores.GetByID(ctx, in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.ProveedorID)
	}
	if !proveedor.Activo() {
		return nil, fmt.Errorf("%w: proveedor %s inactivo", domain.ErrInvalidInput, in.ProveedorID)
	}

	now := uc.now()
	fecha := now
	if in.Fecha != nil && !in.Fecha.IsZero() {
		fecha = *in.Fecha
	}
	compra := entity.NuevaCompra(proveedor.ID, empleado.ID, fecha)
	compra.Observaciones = in.Observaciones
	compra.CreatedAt, compra.UpdatedAt = now, now

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
		tasa := producto.TasaImpuesto
		if item.TasaImpuesto != nil {
			tasa = *item.TasaImpuesto
		}
		if !entity.TasaImpuestoValida(tasa) {
			return nil, fmt.Errorf("%w: tasa de impuesto %s", domain.ErrInvalidInput, tasa)
		}
		if err := compra.AgregarDetalle(producto.ID, item.Cantidad, item.CostoUnitario, tasa); err != nil {
			return nil, err
		}
	}

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		n, err := r.Compras.NextNumero(ctx)
		if err != nil {
			return err
		}
		compra.Numero = fmt.Sprintf("C-%06d", n)
		if err := r.Compras.Create(ctx, compra); err != nil {
			return err
		}
		if !in.RecibirInmediato {
			return nil
		}
		return recibirEnTx(ctx, r, compra, empleado.ID, now)
	})
	if err != nil {
		return nil, err
	}
	if compra.Estado == entity.CompraRecibida {
		uc.cache.Invalidate(ctx, productoIDs(compra)...)
	}
	uc.log.Info().
		Str("compra", compra.Numero).
		Str("proveedor_id", compra.ProveedorID).
		Str("estado", compra.Estado).
		Str("total", compra.Total.String()).
		Msg("compra registrada")
	return ToCompraResponse(compra), nil
}

// Recibir ingresa la mercancía: PENDIENTE -> RECIBIDA, suma stock y recalcula el costo promedio.
func (uc *UseCase) Recibir(ctx context.Context, empleadoID, id string) (*dto.CompraResponse, error) {
	if _, err := uc.empleado(ctx, empleadoID, "recibir compras", (*entity.Empleado).PuedeComprar); err != nil {
		return nil, err
	}
	var compra *entity.Compra
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		if compra, err = lock(ctx, r, id); err != nil {
			return err
		}
		return recibirEnTx(ctx, r, compra, empleadoID, uc.now())
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, productoIDs(compra)...)
	uc.log.Info().Str("compra", compra.Numero).Str("empleado_id", empleadoID).Msg("compra recibida")
	return ToCompraResponse(compra), nil
}

// Anular pasa la compra a ANULADA. Si ya fue recibida retira el stock ingresado y su
// aporte al costo; falla con ErrInsufficientStock si la mercancía ya se vendió.
func (uc *UseCase) Anular(ctx context.Context, empleadoID, id string) (*dto.CompraResponse, error) {
	var (
		compra   *entity.Compra
		recibida bool
	)
	if _, err := uc.empleado(ctx, empleadoID, "anular compras", (*entity.Empleado).PuedeAnular); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		if compra, err = lock(ctx, r, id); err != nil {
			return err
		}
		recibida = compra.Estado == entity.CompraRecibida
		now := uc.now()
		if err := compra.Anular(now); err != nil {
			return err
		}
		if recibida {
			for _, d := range compra.Detalles {
				_, err := inventario.ReversarEntradaEnTx(ctx, r, inventario.Movimiento{
					ProductoID:    d.ProductoID,
					Cantidad:      d.Cantidad,
					CostoUnitario: &d.CostoUnitario,
					Referencia:    compra.ID,
					Motivo:        "anulación compra " + compra.Numero,
					EmpleadoID:    empleadoID,
					Fecha:         now,
				})
				if err != nil {
					return err
				}
			}
		}
		return r.Compras.UpdateEstado(ctx, compra)
	})
	if err != nil {
		return nil, err
	}
	if recibida {
		uc.cache.Invalidate(ctx, productoIDs(compra)...)
	}
	uc.log.Info().
		Str("compra", compra.Numero).
		Bool("reversa_stock", recibida).
		Str("empleado_id", empleadoID).
		Msg("compra anulada")
	return ToCompraResponse(compra), nil
}

// Obtener devuelve la compra con sus líneas.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.CompraResponse, error) {
	compra, err := uc.compras.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	return ToCompraResponse(compra), nil
}

// Listar devuelve cabeceras filtradas por proveedor, estado y rango de fechas.
func (uc *UseCase) Listar(ctx context.Context, in dto.CompraFiltroRequest) (*dto.CompraListResponse, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, err
	}
	filtro := repository.CompraFiltro{ProveedorID: in.ProveedorID, Estado: in.Estado, Desde: desde, Hasta: hasta}
	list, err := uc.compras.List(ctx, filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToCompraResponse(c))
	}
	return &dto.CompraListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// empleado carga al empleado y exige el permiso. Desconocido o inactivo es ErrForbidden.
func (uc *UseCase) empleado(ctx context.Context, id, accion string, permiso func(*entity.Empleado) bool) (*entity.Empleado, error) {
	e, err := uc.empleados.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || !permiso(e) {
		return nil, fmt.Errorf("%w: el empleado no puede %s", domain.ErrForbidden, accion)
	}
	return e, nil
}

func lock(ctx context.Context, r repository.TxRepos, id string) (*entity.Compra, error) {
	compra, err := r.Compras.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	return compra, nil
}

// recibirEnTx registra una ENTRADA por línea al costo de la compra y marca la recepción.
func recibirEnTx(ctx context.Context, r repository.TxRepos, compra *entity.Compra, empleadoID string, now time.Time) error {
	if err := compra.MarcarRecibida(now); err != nil {
		return err
	}
	for _, d := range compra.Detalles {
		_, err := inventario.RegistrarEntradaEnTx(ctx, r, entity.MovimientoEntrada, inventario.Movimiento{
			ProductoID:    d.ProductoID,
			Cantidad:      d.Cantidad,
			CostoUnitario: &d.CostoUnitario,
			Referencia:    compra.ID,
			Motivo:        "compra " + compra.Numero,
			EmpleadoID:    empleadoID,
			Fecha:         now,
		})
		if err != nil {
			return err
		}
	}
	return r.Compras.UpdateEstado(ctx, compra)
}

func productoIDs(c *entity.Compra) []string {
	ids := make([]string, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		ids = append(ids, d.ProductoID)
	}
	return ids
}

// ToCompraResponse mapea la entidad a DTO.
func ToCompraResponse(c *entity.Compra) *dto.CompraResponse {
	out := &dto.CompraResponse{
		ID:             c.ID,
		Numero:         c.Numero,
		ProveedorID:    c.ProveedorID,
		EmpleadoID:     c.EmpleadoID,
		Fecha:          c.Fecha,
		Subtotal:       c.Subtotal,
		Impuesto:       c.Impuesto,
		Total:          c.Total,
		Estado:         c.Estado,
		Observaciones:  c.Observaciones,
		FechaRecepcion: c.FechaRecepcion,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for _, d := range c.Detalles {
		out.Detalles = append(out.Detalles, dto.DetalleCompraResponse{
			ID:            d.ID,
			ProductoID:    d.ProductoID,
			Cantidad:      d.Cantidad,
			CostoUnitario: d.CostoUnitario,
			TasaImpuesto:  d.TasaImpuesto,
			Subtotal:      d.Subtotal,
			ValorImpuesto: d.ValorImpuesto,
			Total:         d.Total,
		})
	}
	return out
}
