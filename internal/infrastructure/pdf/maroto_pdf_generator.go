// Package pdf implementa los documentos imprimibles de una orden de servicio
// usando Maroto v2: el presupuesto para el cliente y el recibo de entrada.
//
// Layout de la página A4 del presupuesto:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: MCI Assistência Técnica  │  N° OS + Data           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                 │
//	│  EQUIPO: Modelo + N° de serie + defecto relatado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qtd | Peça | Valor Unit. | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Peças / Desconto / Mão de obra / Frete / TOTAL    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: técnico responsable + WhatsApp + sitio             │
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

	"github.com/paulinhof/assistencia-api/internal/application/printing"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/orders"
)

const (
	shopName = "MCI Assistência Técnica"
	shopSite = "www.mci-store.com.br"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 17, Green: 94, Blue: 89}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ printing.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa printing.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(shopName, true).
		Build()
	return maroto.New(cfg)
}

// GenerateQuotePDF genera el presupuesto de la orden y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotePDF(
	_ context.Context,
	o *entity.ServiceOrder,
	client *entity.Client,
	lines []printing.OrderLineForPDF,
	contact printing.Contact,
) ([]byte, error) {
	m := newDocument("Orçamento " + o.ID)

	m.AddRows(headerRow("ORÇAMENTO", o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(equipmentRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(o))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(contact)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar presupuesto: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateReceiptPDF genera el recibo de entrada del equipo.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(
	_ context.Context,
	o *entity.ServiceOrder,
	client *entity.Client,
	contact printing.Contact,
) ([]byte, error) {
	m := newDocument("Recibo de Entrada " + o.ID)

	m.AddRows(headerRow("RECIBO DE ENTRADA", o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(equipmentRow(o))

	if len(o.Accessories) > 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("ACESSÓRIOS RECEBIDOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(o.Accessories, ", "), props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		)))
	}
	if o.Condition != "" {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("ESTADO DO EQUIPAMENTO NA ENTRADA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.Condition, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}

	// QR con el número de la orden para ubicarla en el mostrador
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(40).Add(
		col.New(4).Add(code.NewQr(o.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Apresente este recibo na retirada\ndo equipamento.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(o.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 20, Left: 3, Color: colorPrimary,
			}),
		),
	))

	// Área de firma
	m.AddRows(line.NewRow(8))
	m.AddRows(row.New(12).Add(
		col.New(6).Add(
			text.New("_________________________________", props.Text{Size: 9, Top: 2, Align: align.Center}),
			text.New("Assinatura do cliente", props.Text{Size: 7, Top: 8, Align: align.Center, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("_________________________________", props.Text{Size: 9, Top: 2, Align: align.Center}),
			text.New("Assinatura do técnico", props.Text{Size: 7, Top: 8, Align: align.Center, Color: colorGray}),
		),
	))

	m.AddRows(footerRows(contact)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo de entrada: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y número de OS + fecha (der).
func headerRow(title string, o *entity.ServiceOrder) core.Row {
	fecha := o.EntryDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(shopSite, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(o.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data de entrada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Telefone: %s   |   Email: %s",
				nonEmpty(client.Phone, "—"),
				nonEmpty(client.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// equipmentRow: equipo y defecto relatado.
func equipmentRow(o *entity.ServiceOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   N° de série: %s",
				nonEmpty(o.Model, "—"),
				nonEmpty(o.SerialNumber, "—"),
			), props.Text{Size: 9, Top: 6}),
			text.New("Defeito relatado: "+nonEmpty(o.FaultDescription, "—"),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de piezas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Peça", 6, align.Left),
		h("Valor Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableLineRows: una fila por pieza del presupuesto.
func tableLineRows(lines []printing.OrderLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.PartName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatBRL(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatBRL(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: desglose de totales alineado a la derecha. El descuento
// porcentual solo recae sobre las piezas.
func totalsRow(o *entity.ServiceOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	subtotal := orders.PartsSubtotal(o.Items)
	disc := orders.ClampDiscount(o.Discount)

	labels := []core.Component{label("Peças:")}
	values := []core.Component{value(formatBRL(subtotal))}
	if disc.GreaterThan(decimal.Zero) {
		labels = append(labels, label(fmt.Sprintf("Desconto (%s%%):", disc.StringFixed(0))))
		values = append(values, value("-"+formatBRL(subtotal.Mul(disc).Div(decimal.NewFromInt(100)))))
	}
	labels = append(labels,
		label("Mão de obra:"),
		label("Frete:"),
		grandLabel("TOTAL:"),
	)
	values = append(values,
		value(formatBRL(o.LaborCost)),
		value(formatBRL(o.ShippingCost)),
		grandValue(formatBRL(orders.Total(*o))),
	)

	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// footerRows: bloque de contacto del técnico responsable.
func footerRows(contact printing.Contact) []core.Row {
	return []core.Row{
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(10).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Técnico Responsável: %s • WhatsApp: %s",
				contact.Technician, contact.WhatsApp),
				props.Text{Size: 8, Top: 1, Align: align.Center, Color: colorGray}),
			text.New(shopName+" • "+shopSite, props.Text{
				Size: 8, Top: 6, Align: align.Center, Color: colorGray,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formatea un decimal como moneda brasileña.
// Ej: 1234.5 → "R$ 1.234,50"
func formatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}

	out := "R$ " + string(buf) + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
