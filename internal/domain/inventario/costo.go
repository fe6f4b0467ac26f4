// Package inventario contiene los servicios de dominio de valorización del inventario.
package inventario

import "github.com/shopspring/decimal"

// CostoPromedioPonderado calcula el nuevo costo unitario tras una entrada:
//
//	((stock * costo) + (cantEntrada * costoEntrada)) / (stock + cantEntrada)
//
// El resultado se redondea a 4 decimales. Si la suma de cantidades no es positiva devuelve 0.
func CostoPromedioPonderado(stock, costo, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	total := stock.Add(cantEntrada)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	valor := stock.Mul(costo).Add(cantEntrada.Mul(costoEntrada))
	return valor.Div(total).Round(4)
}

// CostoTrasReversion recalcula el costo al retirar una entrada previamente valorizada
// (anulación de una compra recibida). Si no queda stock devuelve el costo vigente.
func CostoTrasReversion(stock, costo, cantSalida, costoSalida decimal.Decimal) decimal.Decimal {
	restante := stock.Sub(cantSalida)
	if restante.LessThanOrEqual(decimal.Zero) {
		return costo
	}
	valor := stock.Mul(costo).Sub(cantSalida.Mul(costoSalida))
	if valor.IsNegative() {
		return decimal.Zero
	}
	return valor.Div(restante).Round(4)
}
