package entity

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// Decimales que admiten las columnas NUMERIC de la base.
const (
	DecimalesPrecio   = 2 // precio_venta, precio_unitario
	DecimalesCantidad = 4 // cantidad, stock, stock_minimo
	DecimalesCosto    = 4 // costo, costo_unitario
)

// CabeEnDecimales indica si d se guarda sin perder dígitos con n decimales.
func CabeEnDecimales(d decimal.Decimal, n int32) bool {
	return d.Equal(d.Truncate(n))
}

// calcularLinea devuelve subtotal, impuesto y total de una línea, redondeados a 2 decimales.
// tasa es un porcentaje (19 = 19 %).
func calcularLinea(cantidad, precio, tasa decimal.Decimal) (subtotal, impuesto, total decimal.Decimal) {
	subtotal = cantidad.Mul(precio).Round(2)
	impuesto = subtotal.Mul(tasa).Div(cien).Round(2)
	total = subtotal.Add(impuesto)
	return subtotal, impuesto, total
}

// validarLinea exige producto, cantidad positiva y precio no negativo, ambos dentro de la escala de la columna.
func validarLinea(productoID string, cantidad, precio decimal.Decimal, decimalesPrecio int32) bool {
	return productoID != "" &&
		cantidad.GreaterThan(decimal.Zero) && CabeEnDecimales(cantidad, DecimalesCantidad) &&
		!precio.IsNegative() && CabeEnDecimales(precio, decimalesPrecio)
}
