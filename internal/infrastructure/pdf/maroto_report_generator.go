// Package pdf imprime los reportes de censo con Maroto v2.
//
// Layout de la página A4 (reporte de censo):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización + título  │  Año + fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  METADATOS: Ubicación / Responsable / Comisión / Fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Nombre | Unidad | Cant. | P.Unit | Total | Notas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Cantidad total / TOTAL GENERAL                     │
//	│  FOOTER: QR con el ID del censo + firmas de la comisión      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

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

	appreport "github.com/ekspresi/itm-sub002/internal/application/report"
	"github.com/ekspresi/itm-sub002/internal/domain/report"
	"github.com/ekspresi/itm-sub002/pkg/money"
)

var _ appreport.Renderer = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 40, Blue: 40}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.Renderer usando Maroto v2.
type MarotoReportGenerator struct {
	organization string
	fmt          *money.Formatter
}

// NewMarotoReportGenerator construye el generador. organization encabeza cada página.
func NewMarotoReportGenerator(organization string, f *money.Formatter) *MarotoReportGenerator {
	return &MarotoReportGenerator{organization: organization, fmt: f}
}

func (g *MarotoReportGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.organization, true).
		Build()
	return maroto.New(cfg)
}

// RenderCensusReport genera el PDF del reporte de un censo.
func (g *MarotoReportGenerator) RenderCensusReport(r *report.CensusReport) ([]byte, error) {
	m := g.newDocument(r.Title)

	m.AddRows(g.headerRow(r.Title, fmt.Sprintf("Año %d", r.Meta.Year), r.ComposedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metaRows(r.Meta)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow([]headerCell{
		{"#", 1, align.Center},
		{"Nombre", 3, align.Left},
		{"Unidad", 1, align.Center},
		{"Cant.", 1, align.Right},
		{"Precio Unit.", 2, align.Right},
		{"Total", 2, align.Right},
		{"Notas", 2, align.Left},
	}))
	for _, rw := range r.Rows {
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", rw.Index), 1, align.Center),
			cell(rw.Name, 3, align.Left),
			cell(rw.Unit, 1, align.Center),
			cell(g.fmt.Quantity(rw.Quantity), 1, align.Right),
			cell(g.fmt.Money(rw.UnitPrice), 2, align.Right),
			cell(g.fmt.Money(rw.RowTotal), 2, align.Right),
			cell(rw.Notes, 2, align.Left),
		))
	}
	if len(r.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin líneas registradas", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}))))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{
		{"Cantidad total:", g.fmt.Quantity(r.TotalQty)},
		{"TOTAL GENERAL:", g.fmt.Money(r.GrandTotal)},
	}))
	if !r.Consistent {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New(
			"Atención: el total registrado ("+g.fmt.Money(r.CachedTotal)+") no coincide con la suma de las líneas.",
			props.Text{Size: 8, Style: fontstyle.Bold, Color: colorWarn, Top: 2},
		))))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(r.Meta))

	return generate(m)
}

// RenderYearlySummary genera el PDF del resumen anual.
func (g *MarotoReportGenerator) RenderYearlySummary(s *report.YearlySummary) ([]byte, error) {
	m := g.newDocument(s.Title)

	m.AddRows(g.headerRow(s.Title, fmt.Sprintf("%d censos", len(s.Rows)), s.ComposedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]headerCell{
		{"#", 1, align.Center},
		{"Ubicación", 4, align.Left},
		{"Responsable", 3, align.Left},
		{"Estado", 1, align.Center},
		{"Total", 3, align.Right},
	}))
	for _, rw := range s.Rows {
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", rw.Index), 1, align.Center),
			cell(rw.LocationName, 4, align.Left),
			cell(nonEmpty(rw.ResponsiblePerson, "—"), 3, align.Left),
			cell(rw.Status, 1, align.Center),
			cell(g.fmt.Money(rw.TotalValue), 3, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{
		{fmt.Sprintf("TOTAL %d:", s.Year), g.fmt.Money(s.GrandTotal)},
	}))

	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización + título (izq) y subtítulo + fecha de emisión (der).
func (g *MarotoReportGenerator) headerRow(title, subtitle string, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(g.organization, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 10, Top: 9}),
		),
		col.New(4).Add(
			text.New(subtitle, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Emitido: "+at.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// metaRows: ubicación, responsable, comisión, fechas y estado.
func metaRows(meta report.CensusMeta) []core.Row {
	period := formatDate(meta.StartDate) + " – " + formatDate(meta.EndDate)
	return []core.Row{
		row.New(12).Add(
			col.New(6).Add(
				text.New("UBICACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(meta.LocationName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			),
			col.New(6).Add(
				text.New("RESPONSABLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(nonEmpty(meta.ResponsiblePerson, "—"), props.Text{Size: 10, Top: 6}),
			),
		),
		row.New(12).Add(
			col.New(6).Add(
				text.New("COMISIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(nonEmpty(strings.Join(meta.Committee, ", "), "—"), props.Text{Size: 8, Top: 6}),
			),
			col.New(4).Add(
				text.New("PERIODO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(period, props.Text{Size: 8, Top: 6}),
			),
			col.New(2).Add(
				text.New("ESTADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
				text.New(meta.Status, props.Text{Size: 8, Top: 6}),
			),
		),
	}
}

type headerCell struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cells []headerCell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

// totalsRow: pares etiqueta/valor alineados a la derecha; el último va resaltado.
func totalsRow(pairs [][2]string) core.Row {
	labels := make([]core.Component, 0, len(pairs))
	values := make([]core.Component, 0, len(pairs))
	for i, p := range pairs {
		top := float64(i) * 6
		st := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		vt := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if i == len(pairs)-1 {
			st.Size, st.Color = 10, colorPrimary
			vt.Size, vt.Style, vt.Color = 10, fontstyle.Bold, colorPrimary
		}
		labels = append(labels, text.New(p[0], st))
		values = append(values, text.New(p[1], vt))
	}
	return row.New(float64(len(pairs))*6+4).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// footerRow: QR con el ID del censo para conciliar la copia impresa y espacio para firmas.
func footerRow(meta report.CensusMeta) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr("census:"+meta.CensusID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Firmas de la comisión:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New(strings.Repeat("_", 30)+"      "+strings.Repeat("_", 30), props.Text{
				Size: 8, Top: 22, Left: 3, Color: colorGray,
			}),
			text.New("ID: "+meta.CensusID, props.Text{Size: 6.5, Top: 32, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(dateLayout)
}
