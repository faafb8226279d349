// Quote PDF layout, A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título Cotización  │  Folio + Fecha                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Servicio (profesional) | P.Unit | Importe    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / TOTAL                      │
//	│  NOTAS + pie de página                                      │
//	└─────────────────────────────────────────────────────────────┘
package quotes

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/bloomwell/wellness-platform/internal/messages"
)

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// PDFGenerator renders quote documents with Maroto v2.
type PDFGenerator struct {
	brandName string
}

// NewPDFGenerator builds the generator.
func NewPDFGenerator(brandName string) *PDFGenerator {
	if brandName == "" {
		brandName = "Bloomwell"
	}
	return &PDFGenerator{brandName: brandName}
}

// Generate renders the quote and returns the PDF bytes.
func (g *PDFGenerator) Generate(q *Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización", true).
		WithAuthor(g.brandName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(q) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	if notes := StripHTML(q.Notes); notes != "" {
		m.AddRows(notesRows(notes)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(g.brandName))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("quotes: generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *PDFGenerator) headerRow(q *Quote) core.Row {
	fecha := q.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.brandName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cotización de servicios", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(q.ID, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(q *Quote) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(q.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Email: "+q.ClientEmail, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Servicio", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

func tableLineRows(q *Quote) []core.Row {
	result := make([]core.Row, 0, len(q.Lines))
	for _, li := range q.Lines {
		name := li.ServiceName
		if len(li.ProfessionalNames) > 0 {
			name = fmt.Sprintf("%s - %s", li.ServiceName, strings.Join(li.ProfessionalNames, ", "))
		}
		height := 7.0
		serviceCell := []core.Component{text.New(
			name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)}
		if li.Notes != "" {
			height = 11
			serviceCell = append(serviceCell, text.New(
				StripHTML(li.Notes),
				props.Text{Size: 7, Align: align.Left, Top: 5, Left: 1, Color: colorGray},
			))
		}
		result = append(result, row.New(height).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", li.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(serviceCell...),
			col.New(2).Add(text.New(
				messages.FormatAmount(li.UnitPrice, q.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				messages.FormatAmount(li.Amount(), q.Currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(q *Quote) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(messages.FormatAmount(q.Total(), q.Currency), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	discountLabel := fmt.Sprintf("Descuento (%s%%):", q.DiscountPct.StringFixed(0))

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label(discountLabel),
			grandLabel,
		),
		col.New(3).Add(
			value(messages.FormatAmount(q.Subtotal(), q.Currency)),
			value("-"+messages.FormatAmount(q.DiscountAmount(), q.Currency)),
			grandValue,
		),
		col.New(3),
	)
}

func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(14).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)),
	}
}

func footerRow(brandName string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Cotización generada por %s. Los precios pueden cambiar sin previo aviso; "+
				"esta cotización tiene una vigencia de 15 días.", brandName),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
