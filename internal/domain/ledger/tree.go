// Package ledger arma el libro de ventas: agrupa los movimientos por año, mes y día,
// suma cada nivel y permite acotar el árbol con una búsqueda libre o por período.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// Tree año -> mes -> clave de día "D/M/Y" -> movimientos.
// Los mapas no guardan orden; Years, Months y Days devuelven el orden de presentación.
type Tree struct {
	years map[int]*Year
}

// Year rama de un año.
type Year struct {
	Year   int
	months map[time.Month]*Month
}

// Month rama de un mes.
type Month struct {
	Year  int
	Month time.Month
	days  map[string]*Day
}

// Day hoja del árbol con los movimientos de un día en el orden de entrada.
type Day struct {
	Key   string
	Date  dates.Day
	Sales []entity.Sale
}

// Totals ingresos, gastos (en negativo) y neto de un grupo.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Build agrupa sales por (año, mes, día). Las fechas deben venir canonizadas (YYYY-MM-DD);
// un movimiento con fecha irreconocible se omite.
func Build(sales []entity.Sale) Tree {
	t := Tree{years: make(map[int]*Year)}
	for _, s := range sales {
		d := dates.ParseString(s.Date, time.UTC)
		if d.IsZero() {
			continue
		}
		t.add(d, s)
	}
	return t
}

func (t *Tree) add(d dates.Day, s entity.Sale) {
	y, ok := t.years[d.Year()]
	if !ok {
		y = &Year{Year: d.Year(), months: make(map[time.Month]*Month)}
		t.years[d.Year()] = y
	}
	m, ok := y.months[d.Month()]
	if !ok {
		m = &Month{Year: d.Year(), Month: d.Month(), days: make(map[string]*Day)}
		y.months[d.Month()] = m
	}
	key := d.Key()
	day, ok := m.days[key]
	if !ok {
		day = &Day{Key: key, Date: d}
		m.days[key] = day
	}
	day.Sales = append(day.Sales, s)
}

// Empty informa si el árbol no tiene movimientos.
func (t Tree) Empty() bool { return len(t.years) == 0 }

// Years devuelve los años del más reciente al más antiguo.
func (t Tree) Years() []*Year {
	out := make([]*Year, 0, len(t.years))
	for _, y := range t.years {
		out = append(out, y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// Months devuelve los meses del más reciente al más antiguo.
func (y *Year) Months() []*Month {
	out := make([]*Month, 0, len(y.months))
	for _, m := range y.months {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// Days devuelve los días en orden de calendario.
func (m *Month) Days() []*Day {
	out := make([]*Day, 0, len(m.days))
	for _, d := range m.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Sum suma los montos del día.
func (d *Day) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, s := range d.Sales {
		total = total.Add(s.Amount)
	}
	return total
}

// Sum suma las sumas de cada día del mes.
func (m *Month) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, d := range m.days {
		total = total.Add(d.Sum())
	}
	return total
}

// Sum suma las sumas de cada mes del año.
func (y *Year) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, m := range y.months {
		total = total.Add(m.Sum())
	}
	return total
}

// Totals separa ingresos y gastos del mes.
func (m *Month) Totals() Totals {
	var t Totals
	for _, d := range m.days {
		t = t.add(d.Totals())
	}
	return t
}

// Totals separa ingresos y gastos del día.
func (d *Day) Totals() Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
	for _, s := range d.Sales {
		if s.IsExpense() {
			t.Expense = t.Expense.Add(s.Amount)
		} else {
			t.Income = t.Income.Add(s.Amount)
		}
		t.Net = t.Net.Add(s.Amount)
	}
	return t
}

func (t Totals) add(o Totals) Totals {
	return Totals{
		Income:  t.Income.Add(o.Income),
		Expense: t.Expense.Add(o.Expense),
		Net:     t.Net.Add(o.Net),
	}
}

// Year busca la rama de un año.
func (t Tree) Year(year int) (*Year, bool) {
	y, ok := t.years[year]
	return y, ok
}

// Month busca la rama de un mes.
func (t Tree) Month(month time.Month, year int) (*Month, bool) {
	y, ok := t.years[year]
	if !ok {
		return nil, false
	}
	m, ok := y.months[month]
	return m, ok
}

// Day busca un día por su clave "D/M/Y".
func (t Tree) Day(key string) (*Day, bool) {
	d := dates.ParseString(key, time.UTC)
	if d.IsZero() {
		return nil, false
	}
	m, ok := t.Month(d.Month(), d.Year())
	if !ok {
		return nil, false
	}
	day, ok := m.days[d.Key()]
	return day, ok
}

// SumDay suma del día con clave key; cero si no hay movimientos.
func (t Tree) SumDay(key string) decimal.Decimal {
	if d, ok := t.Day(key); ok {
		return d.Sum()
	}
	return decimal.Zero
}

// SumMonth suma del mes (1-12) del año indicado.
func (t Tree) SumMonth(month, year int) decimal.Decimal {
	if m, ok := t.Month(time.Month(month), year); ok {
		return m.Sum()
	}
	return decimal.Zero
}

// SumYear suma del año.
func (t Tree) SumYear(year int) decimal.Decimal {
	if y, ok := t.years[year]; ok {
		return y.Sum()
	}
	return decimal.Zero
}
