// Package pdf genera el comprobante de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Venta + Fecha + Estado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + documento + contacto                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Descripción | P.Unit | IVA | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR (número + total) + vendedor + observaciones      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-ventas/internal/application/ports"
	"github.com/jhoicas/gestion-ventas/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ComprobanteGenerator = (*MarotoComprobanteGenerator)(nil)

// MarotoComprobanteGenerator implementa ports.ComprobanteGenerator usando Maroto v2.
type MarotoComprobanteGenerator struct {
	negocio string
}

// NewMarotoComprobanteGenerator construye el generador. negocio es el nombre impreso en la cabecera.
func NewMarotoComprobanteGenerator(negocio string) *MarotoComprobanteGenerator {
	return &MarotoComprobanteGenerator{negocio: negocio}
}

// GenerarComprobanteVenta genera el PDF y devuelve sus bytes.
func (g *MarotoComprobanteGenerator) GenerarComprobanteVenta(_ context.Context, c ports.ComprobanteVenta) ([]byte, error) {
	if c.Venta == nil || c.Cliente == nil {
		return nil, fmt.Errorf("pdf: comprobante sin venta o cliente")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta "+c.Venta.Numero, true).
		WithAuthor(g.negocio, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.negocio, c.Venta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(c.Cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(c.Lineas)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(c.Venta))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(c)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y número, fecha y estado (der).
func headerRow(negocio string, v *entity.Venta) core.Row {
	derecha := []core.Component{
		text.New("COMPROBANTE DE VENTA", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Color: colorPrimary, Top: 1,
		}),
		text.New(v.Numero, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
		}),
		text.New("Fecha: "+v.Fecha.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 14, Color: colorGray,
		}),
	}
	if v.Estado == entity.VentaAnulada {
		derecha = append(derecha, text.New("ANULADA", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 19, Color: colorRed,
		}))
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New(negocio, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(derecha...),
	)
}

// clienteRow: datos del comprador.
func clienteRow(c *entity.Cliente) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.NombreCompleto(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s %s   |   Tel: %s   |   Email: %s",
				c.TipoDocumento, c.NumeroDocumento,
				nonEmpty(c.Telefono, "-"),
				nonEmpty(c.Email, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea de la venta.
func tableDetailRows(lineas []ports.LineaComprobante) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				formatCantidad(l.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.Codigo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				l.Nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.PrecioUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.TasaImpuesto.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(v *entity.Venta) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("IVA:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 11,
			}),
		),
		col.New(3).Add(
			value(formatMoney(v.Subtotal), 0),
			value(formatMoney(v.Impuesto), 5),
			text.New(formatMoney(v.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 11,
			}),
		),
	)
}

// footerRows: QR con número y total, vendedor y observaciones.
func footerRows(c ports.ComprobanteVenta) []core.Row {
	vendedor := "-"
	if c.Empleado != nil {
		vendedor = c.Empleado.NombreCompleto()
	}
	info := []core.Component{
		text.New("Atendido por: "+vendedor, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
	}
	if obs := strings.TrimSpace(c.Venta.Observaciones); obs != "" {
		info = append(info, text.New("Observaciones: "+obs, props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}))
	}
	info = append(info, text.New("Gracias por su compra", props.Text{
		Style: fontstyle.Bold, Size: 10, Top: 22, Left: 3, Color: colorPrimary,
	}))

	return []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(QRData(c.Venta), props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(info...),
		),
	}
}

// QRData contenido del código QR del comprobante.
func QRData(v *entity.Venta) string {
	return fmt.Sprintf("VENTA:%s|FECHA:%s|TOTAL:%s", v.Numero, v.Fecha.Format("2006-01-02"), v.Total.StringFixed(2))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatCantidad(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.String()
}

// formatMoney redondea a pesos e inserta puntos de miles. Ej: 1000000 → "$1.000.000".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	signo := ""
	if strings.HasPrefix(s, "-") {
		signo, s = "-", s[1:]
	}
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return signo + "$" + string(buf)
}
