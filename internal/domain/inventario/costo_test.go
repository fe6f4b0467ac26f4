package inventario_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-ventas/internal/domain/inventario"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostoPromedioPonderado(t *testing.T) {
	tests := []struct {
		name                                string
		stock, costo, cantEntrada, costoEnt string
		esperado                            string
	}{
		{"sin stock previo toma el costo de entrada", "0", "0", "10", "1500", "1500"},
		{"promedia con stock existente", "10", "1000", "10", "2000", "1500"},
		{"pondera por cantidades", "30", "100", "10", "200", "125"},
		{"entrada en cero conserva el costo", "3", "1", "0", "0", "1"},
		{"suma no positiva devuelve cero", "0", "100", "0", "100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventario.CostoPromedioPonderado(d(tt.stock), d(tt.costo), d(tt.cantEntrada), d(tt.costoEnt))
			assert.True(t, d(tt.esperado).Equal(got), "esperado %s, obtenido %s", tt.esperado, got)
		})
	}
}

func TestCostoPromedioPonderado_Periodico(t *testing.T) {
	got := inventario.CostoPromedioPonderado(d("2"), d("10"), d("1"), d("20"))
	assert.Equal(t, "13.3333", got.String())
}

func TestCostoTrasReversion_DeshaceLaEntrada(t *testing.T) {
	nuevo := inventario.CostoPromedioPonderado(d("10"), d("1000"), d("10"), d("2000"))
	revertido := inventario.CostoTrasReversion(d("20"), nuevo, d("10"), d("2000"))
	assert.True(t, d("1000").Equal(revertido), "obtenido %s", revertido)
}

func TestCostoTrasReversion_SinStockRestante(t *testing.T) {
	got := inventario.CostoTrasReversion(d("5"), d("300"), d("5"), d("300"))
	assert.True(t, d("300").Equal(got))
}
