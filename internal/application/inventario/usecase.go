package inventario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-ventas/internal/application/dto"
	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
	"github.com/jhoicas/gestion-ventas/pkg/logger"
)

// UseCase ajustes manuales de stock y consulta del kardex.
type UseCase struct {
	tx          repository.TxRunner
	productos   repository.ProductoRepository
	movimientos repository.MovimientoRepository
	empleados   repository.EmpleadoRepository
	cache       ports.ProductoCache
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx repository.TxRunner,
	productos repository.ProductoRepository,
	movimientos repository.MovimientoRepository,
	empleados repository.EmpleadoRepository,
	cache ports.ProductoCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:          tx,
		productos:   productos,
		movimientos: movimientos,
		empleados:   empleados,
		cache:       cache,
		log:         log.Named("inventario"),
	}
}

// Ajustar registra un ajuste manual: cantidad positiva entra al costo promedio vigente,
// negativa sale verificando stock.
func (uc *UseCase) Ajustar(ctx context.Context, empleadoID string, in dto.AjusteRequest) (*dto.MovimientoResponse, error) {
	if in.Cantidad.IsZero() {
		return nil, fmt.Errorf("%w: cantidad del ajuste en cero", domain.ErrInvalidInput)
	}
	motivo := strings.TrimSpace(in.Motivo)
	if motivo == "" {
		return nil, fmt.Errorf("%w: motivo requerido", domain.ErrInvalidInput)
	}
	empleado, err := uc.empleados.GetByID(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	if empleado == nil || !empleado.PuedeComprar() {
		return nil, fmt.Errorf("%w: el empleado no puede ajustar inventario", domain.ErrForbidden)
	}
	m := Movimiento{
		ProductoID: in.ProductoID,
		Cantidad:   in.Cantidad.Abs(),
		Referencia: "AJ-" + uuid.New().String()[:8],
		Motivo:     motivo,
		EmpleadoID: empleadoID,
		Fecha:      time.Now(),
	}

	var mov *entity.MovimientoInventario
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		if in.Cantidad.IsPositive() {
			mov, err = RegistrarEntradaEnTx(ctx, r, entity.MovimientoAjuste, m)
		} else {
			mov, err = RegistrarSalidaEnTx(ctx, r, entity.MovimientoAjuste, m)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Invalidate(ctx, in.ProductoID)
	uc.log.Info().
		Str("producto_id", in.ProductoID).
		Str("cantidad", mov.Cantidad.String()).
		Str("empleado_id", empleadoID).
		Msg("ajuste de inventario")
	return ToMovimientoResponse(mov), nil
}

// Kardex devuelve los movimientos del producto en orden cronológico.
func (uc *UseCase) Kardex(ctx context.Context, productoID string, in dto.KardexRequest) (*dto.KardexResponse, error) {
	in.DefaultPage()
	desde, hasta, err := dto.RangoFechas(in.Desde, in.Hasta)
	if err != nil {
		return nil, err
	}
	producto, err := uc.productos.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productoID)
	}
	list, err := uc.movimientos.ListByProducto(ctx, productoID, desde, hasta, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovimientoResponse(m))
	}
	return &dto.KardexResponse{
		ProductoID: productoID,
		Items:      items,
		Page:       dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ToMovimientoResponse mapea la entidad a DTO.
func ToMovimientoResponse(m *entity.MovimientoInventario) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID,
		ProductoID:    m.ProductoID,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		CostoUnitario: m.CostoUnitario,
		CostoTotal:    m.CostoTotal,
		StockFinal:    m.StockFinal,
		Referencia:    m.Referencia,
		Motivo:        m.Motivo,
		EmpleadoID:    m.EmpleadoID,
		Fecha:         m.Fecha,
	}
}
