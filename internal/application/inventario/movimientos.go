package inventario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/domain"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
	costos "github.com/jhoicas/gestion-ventas/internal/domain/inventario"
	"github.com/jhoicas/gestion-ventas/internal/domain/repository"
)

// Movimiento datos de un cambio de stock dentro de una transacción abierta por el llamador.
type Movimiento struct {
	ProductoID string
	Cantidad   decimal.Decimal // siempre positiva; el tipo define el signo
	// CostoUnitario de la entrada. nil = costo promedio actual del producto (no altera el costo).
	CostoUnitario *decimal.Decimal
	Referencia    string
	Motivo        string
	EmpleadoID    string
	Fecha         time.Time
}

func (m Movimiento) validar() error {
	if m.ProductoID == "" || !m.Cantidad.GreaterThan(decimal.Zero) || !entity.CabeEnDecimales(m.Cantidad, entity.DecimalesCantidad) {
		return fmt.Errorf("%w: movimiento de %q por %s", domain.ErrInvalidInput, m.ProductoID, m.Cantidad)
	}
	if m.CostoUnitario != nil && m.CostoUnitario.IsNegative() {
		return fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
	}
	if m.CostoUnitario != nil && !entity.CabeEnDecimales(*m.CostoUnitario, entity.DecimalesCosto) {
		return fmt.Errorf("%w: costo unitario con más de %d decimales", domain.ErrInvalidInput, entity.DecimalesCosto)
	}
	return nil
}

func bloquear(ctx context.Context, r repository.TxRepos, id string) (*entity.Producto, error) {
	producto, err := r.Productos.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return producto, nil
}

// RegistrarSalidaEnTx bloquea el producto (SELECT FOR UPDATE), verifica que alcance el stock,
// descuenta y guarda el movimiento al costo promedio vigente. tipo es SALIDA o AJUSTE.
func RegistrarSalidaEnTx(ctx context.Context, r repository.TxRepos, tipo string, m Movimiento) (*entity.MovimientoInventario, error) {
	if err := m.validar(); err != nil {
		return nil, err
	}
	producto, err := bloquear(ctx, r, m.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto.Stock.LessThan(m.Cantidad) {
		return nil, fmt.Errorf("%w: %s tiene %s, se requieren %s",
			domain.ErrInsufficientStock, producto.Codigo, producto.Stock, m.Cantidad)
	}
	nuevoStock := producto.Stock.Sub(m.Cantidad)
	if err := r.Productos.UpdateStockYCosto(ctx, producto.ID, nuevoStock, producto.Costo); err != nil {
		return nil, err
	}
	return guardar(ctx, r, tipo, m, m.Cantidad.Neg(), producto.Costo, nuevoStock)
}

// RegistrarEntradaEnTx bloquea el producto, recalcula el costo promedio ponderado con la
// entrada, suma el stock y guarda el movimiento. tipo es ENTRADA o AJUSTE.
func RegistrarEntradaEnTx(ctx context.Context, r repository.TxRepos, tipo string, m Movimiento) (*entity.MovimientoInventario, error) {
	if err := m.validar(); err != nil {
		return nil, err
	}
	producto, err := bloquear(ctx, r, m.ProductoID)
	if err != nil {
		return nil, err
	}
	costo := producto.Costo
	if m.CostoUnitario != nil {
		costo = *m.CostoUnitario
	}
	nuevoCosto := costos.CostoPromedioPonderado(producto.Stock, producto.Costo, m.Cantidad, costo)
	nuevoStock := producto.Stock.Add(m.Cantidad)
	if err := r.Productos.UpdateStockYCosto(ctx, producto.ID, nuevoStock, nuevoCosto); err != nil {
		return nil, err
	}
	return guardar(ctx, r, tipo, m, m.Cantidad, costo, nuevoStock)
}

// ReversarEntradaEnTx retira una entrada ya registrada (compra anulada): descuenta el stock
// y quita su aporte al costo promedio.
func ReversarEntradaEnTx(ctx context.Context, r repository.TxRepos, m Movimiento) (*entity.MovimientoInventario, error) {
	if err := m.validar(); err != nil {
		return nil, err
	}
	if m.CostoUnitario == nil {
		return nil, fmt.Errorf("%w: la reversión requiere el costo de la entrada", domain.ErrInvalidInput)
	}
	producto, err := bloquear(ctx, r, m.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto.Stock.LessThan(m.Cantidad) {
		return nil, fmt.Errorf("%w: %s tiene %s, la compra ingresó %s",
			domain.ErrInsufficientStock, producto.Codigo, producto.Stock, m.Cantidad)
	}
	nuevoCosto := costos.CostoTrasReversion(producto.Stock, producto.Costo, m.Cantidad, *m.CostoUnitario)
	nuevoStock := producto.Stock.Sub(m.Cantidad)
	if err := r.Productos.UpdateStockYCosto(ctx, producto.ID, nuevoStock, nuevoCosto); err != nil {
		return nil, err
	}
	return guardar(ctx, r, entity.MovimientoSalida, m, m.Cantidad.Neg(), *m.CostoUnitario, nuevoStock)
}

func guardar(ctx context.Context, r repository.TxRepos, tipo string, m Movimiento, cantidad, costo, stockFinal decimal.Decimal) (*entity.MovimientoInventario, error) {
	fecha := m.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}
	mov := &entity.MovimientoInventario{
		ID:            uuid.New().String(),
		ProductoID:    m.ProductoID,
		Tipo:          tipo,
		Cantidad:      cantidad,
		CostoUnitario: costo,
		CostoTotal:    cantidad.Mul(costo).Round(2),
		StockFinal:    stockFinal,
		Referencia:    m.Referencia,
		Motivo:        m.Motivo,
		EmpleadoID:    m.EmpleadoID,
		Fecha:         fecha,
	}
	if err := r.Movimientos.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
