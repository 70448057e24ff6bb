// Package pdf genera la versión imprimible del libro de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio + tipo   │  Período + emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MES: nombre + ingresos / gastos / neto                      │
//	│    DÍA: fecha                                 total del día  │
//	│      Observaciones                                   monto   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL PERÍODO                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorExpense = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.LedgerPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.LedgerPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLedgerPDF(_ context.Context, report ports.LedgerReport) ([]byte, error) {
	business := "Libro de ventas"
	if report.Owner != nil && report.Owner.BusinessName != "" {
		business = report.Owner.BusinessName
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Libro de ventas "+report.Title, true).
		WithAuthor(business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, business, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if report.Ledger.Empty() {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{Size: 10, Top: 4, Align: align.Center, Color: colorGray}),
		)))
	}

	total := decimal.Zero
	for _, y := range report.Ledger.Years() {
		for _, mo := range y.Months() {
			m.AddRows(monthRow(mo))
			for _, d := range mo.Days() {
				m.AddRows(dayRow(d))
				m.AddRows(saleRows(d.Sales)...)
			}
			m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
		}
		total = total.Add(y.Sum())
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio (izq) y período + fecha de emisión (der).
func headerRow(report ports.LedgerReport, business string, now time.Time) core.Row {
	kind := ""
	if report.Owner != nil {
		kind = businessLabel(report.Owner.BusinessKind)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(kind, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("LIBRO DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// monthRow: nombre del mes y sus totales.
func monthRow(m *ledger.Month) core.Row {
	tot := m.Totals()
	name := ledger.MonthName(m.Month)
	return row.New(10).Add(
		col.New(4).Add(text.New(
			fmt.Sprintf("%s %d", strings.ToUpper(name), m.Year),
			props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3},
		)),
		col.New(8).Add(text.New(
			fmt.Sprintf("Ingresos %s   |   Gastos %s   |   Neto %s",
				formatMoney(tot.Income), formatMoney(tot.Expense), formatMoney(m.Sum())),
			props.Text{Size: 8, Align: align.Right, Top: 4, Color: colorGray},
		)),
	)
}

// dayRow: fecha del día y su total.
func dayRow(d *ledger.Day) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(d.Date.Display(), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Left: 2,
		})),
		col.New(4).Add(text.New(formatMoney(d.Sum()), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
		})),
	)
}

// saleRows: una fila por movimiento; los gastos en rojo.
func saleRows(sales []entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		amountProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if s.IsExpense() {
			amountProps.Color = colorExpense
		}
		result = append(result, row.New(6).Add(
			col.New(9).Add(text.New(s.Notes, props.Text{Size: 8, Top: 1, Left: 6})),
			col.New(3).Add(text.New(formatMoney(s.Amount), amountProps)),
		))
	}
	return result
}

// totalRow: total del período alineado a la derecha.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DEL PERÍODO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func businessLabel(kind string) string {
	switch kind {
	case entity.BusinessBarbershop:
		return "Barbería"
	case entity.BusinessGym:
		return "Gimnasio"
	default:
		return ""
	}
}

// formatMoney formatea con signo, puntos de miles y dos decimales con coma.
// Ej: -25000 → "-$25.000,00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + thousands(whole) + "," + frac
}

// thousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func thousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
