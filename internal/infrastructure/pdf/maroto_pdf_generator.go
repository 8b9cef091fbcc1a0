// Package pdf genera el reporte del negocio en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio      │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: ventas de hoy / ingresos / margen / inventario        │
//	│  DEUDAS: acreedores / deudores / balance neto                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Cant. | Precio | Valor         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECOMENDACIONES: insights en orden de prioridad             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

var _ analytics.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateBusinessReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBusinessReport(_ context.Context, r analytics.BusinessReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte del negocio", true).
		WithAuthor(nonEmpty(r.BusinessName, "SalesFlow"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(r.Summary))
	m.AddRows(debtRow(r.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(r.Products, r.Summary.Currency)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(insightRows(r.Insights)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r analytics.BusinessReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.BusinessName, "Mi negocio"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte del negocio", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha de corte: "+r.Summary.Date, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro indicadores principales.
func kpiRow(s dto.DashboardSummaryDTO) core.Row {
	return row.New(16).Add(
		kpi("Ventas de hoy", money(s.TodaySales, s.Currency)),
		kpi("Ingresos totales", money(s.TotalRevenue, s.Currency)),
		kpi("Margen estimado", s.ProfitMargin.StringFixed(2)+"%"),
		kpi("Valor del inventario", money(s.StockBalance, s.Currency)),
	)
}

func debtRow(s dto.DashboardSummaryDTO) core.Row {
	netColor := colorPrimary
	if s.NetDebt.IsNegative() {
		netColor = colorAlert
	}
	return row.New(14).Add(
		kpi("Acreedores (debe)", money(s.TotalOwed, s.Currency)),
		kpi("Deudores (le deben)", money(s.TotalOwing, s.Currency)),
		col.New(6).Add(
			text.New("Balance neto", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(money(s.NetDebt, s.Currency), props.Text{Style: fontstyle.Bold, Size: 11, Color: netColor, Top: 6}),
		),
	)
}

func kpi(label, value string) core.Col {
	return col.New(3).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(value, props.Text{Size: 11, Top: 6}),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Cant.", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Valor", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// productRows: una fila por producto; los de stock bajo en rojo.
func productRows(products []dto.ProductResponse, currency string) []core.Row {
	if len(products) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin productos registrados.", props.Text{Size: 8, Color: colorGray, Top: 2}),
		))}
	}
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		qtyColor := &props.Color{}
		if p.LowStock {
			qtyColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.Category, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", p.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: qtyColor,
			})),
			col.New(2).Add(text.New(money(p.UnitPrice, currency), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(3).Add(text.New(money(p.StockValue, currency), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func insightRows(insights []dto.InsightDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("RECOMENDACIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, in := range insights {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(in.Title, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New(in.Content, props.Text{Size: 8, Top: 5, Color: colorGray}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con dos decimales, separador de miles y código de moneda.
// Ej: 1250.5 → "1,250.50 GHS"
func money(d decimal.Decimal, currency string) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	out := groupThousands(intPart) + frac
	if d.IsNegative() {
		out = "-" + out
	}
	if currency != "" {
		out += " " + currency
	}
	return out
}

// groupThousands inserta comas de miles en un string numérico sin signo.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
