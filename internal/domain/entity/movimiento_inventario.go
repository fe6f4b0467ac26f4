package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "ENTRADA" // compra recibida o venta anulada
	MovimientoSalida  = "SALIDA"  // venta o compra anulada
	MovimientoAjuste  = "AJUSTE"  // ajuste manual (+/-)
)

// MovimientoInventario registra cada cambio de stock de un producto (kardex).
type MovimientoInventario struct {
	ID            string
	ProductoID    string
	Tipo          string
	Cantidad      decimal.Decimal // positivo entrada, negativo salida
	CostoUnitario decimal.Decimal
	CostoTotal    decimal.Decimal
	StockFinal    decimal.Decimal // stock del producto después del movimiento
	Referencia    string          // id de venta, compra o ajuste
	Motivo        string
	EmpleadoID    string
	Fecha         time.Time
}
