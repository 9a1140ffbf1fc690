// Package pdf genera la versión imprimible del pedido consolidado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                      │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: listas y responsables fusionados                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Insumo | Unidad | Total                              │
//	│         desglose por solicitud bajo cada insumo              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: número de insumos                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	appcons "github.com/jhoicas/Reposicion-api/internal/application/consolidation"
	domcons "github.com/jhoicas/Reposicion-api/internal/domain/consolidation"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 230, Green: 238, Blue: 245}
)

var _ appcons.OrderPDFGenerator = (*OrderPDFGenerator)(nil)

// OrderPDFGenerator implementa consolidation.OrderPDFGenerator usando Maroto v2.
type OrderPDFGenerator struct {
	formatter *domcons.Formatter
	author    string
}

// NewOrderPDFGenerator construye el generador. Las cantidades usan el formato del formatter.
func NewOrderPDFGenerator(formatter *domcons.Formatter, author string) *OrderPDFGenerator {
	if formatter == nil {
		formatter = domcons.NewFormatter("es")
	}
	return &OrderPDFGenerator{formatter: formatter, author: author}
}

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *OrderPDFGenerator) GenerateOrderPDF(_ context.Context, doc appcons.OrderDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sourcesRow(doc.Sources))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(doc.Lines) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin insumos aprobados.", props.Text{Size: 10, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(g.lineRows(doc.Lines)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total: %d insumos", len(doc.Lines)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2,
		}),
	)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(doc appcons.OrderDocument) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("PEDIDO CONSOLIDADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 2,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// sourcesRow: listas fusionadas en orden de selección.
func sourcesRow(sources []string) core.Row {
	body := "-"
	if len(sources) > 0 {
		body = strings.Join(sources, "   |   ")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SOLICITUDES INCLUIDAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(body, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorHeader}).Add(
		h("Insumo", 7, align.Left),
		h("Unidad", 2, align.Center),
		h("Total", 3, align.Right),
	)
}

// lineRows: una fila por insumo y, si hay más de un aporte, una fila por aporte.
func (g *OrderPDFGenerator) lineRows(lines []domcons.OrderLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			col.New(7).Add(text.New(l.CatalogItemName, props.Text{Size: 9, Style: fontstyle.Bold, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.formatter.Quantity(l.TotalQuantity), props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1, Right: 1,
			})),
		))
		if len(l.Breakdown) < 2 {
			continue
		}
		for _, c := range l.Breakdown {
			rows = append(rows, row.New(5).Add(
				col.New(9).Add(text.New(fmt.Sprintf("%s (%s)", c.SourceListName, c.SubmittedByName), props.Text{
					Size: 7, Top: 0.5, Left: 6, Color: colorGray,
				})),
				col.New(3).Add(text.New(g.formatter.Quantity(c.Quantity), props.Text{
					Size: 7, Align: align.Right, Top: 0.5, Right: 1, Color: colorGray,
				})),
			))
		}
	}
	return rows
}
