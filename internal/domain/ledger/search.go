package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/gymdesk-api/pkg/textfold"
)

// monthNames tabla fija de meses; los alias cubren las abreviaturas habituales de septiembre.
var monthNames = []struct {
	month   time.Month
	name    string
	aliases []string
}{
	{time.January, "enero", nil},
	{time.February, "febrero", nil},
	{time.March, "marzo", nil},
	{time.April, "abril", nil},
	{time.May, "mayo", nil},
	{time.June, "junio", nil},
	{time.July, "julio", nil},
	{time.August, "agosto", nil},
	{time.September, "septiembre", []string{"setiembre", "set", "sept"}},
	{time.October, "octubre", nil},
	{time.November, "noviembre", nil},
	{time.December, "diciembre", nil},
}

// minMonthPrefix largo mínimo de una abreviatura de mes.
const minMonthPrefix = 3

// connectors palabras que se descartan cuando la búsqueda nombra un período ("enero de 2024").
var connectors = map[string]bool{"de": true, "del": true}

// MonthName nombre en español del mes, en minúsculas.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1].name
}

// Period resultado de interpretar una búsqueda. Month y Year valen cero si no se reconocieron;
// Text es lo que queda de la búsqueda (plegado) después de quitar el período.
type Period struct {
	Month time.Month
	Year  int
	Text  string
}

// HasPeriod informa si la búsqueda nombró un mes o un año.
func (p Period) HasPeriod() bool { return p.Month != 0 || p.Year != 0 }

// ParseMonth reconoce un nombre de mes completo, abreviado (3 letras o más) o con alias.
func ParseMonth(word string) (time.Month, bool) {
	w := textfold.Fold(word)
	if len(w) < minMonthPrefix {
		return 0, false
	}
	for _, m := range monthNames {
		if strings.HasPrefix(m.name, w) {
			return m.month, true
		}
		for _, a := range m.aliases {
			if w == a || strings.HasPrefix(a, w) {
				return m.month, true
			}
		}
	}
	return 0, false
}

func parseYear(word string) (int, bool) {
	if len(word) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(word)
	if err != nil || y < 1000 {
		return 0, false
	}
	return y, true
}

// ParsePeriod separa de query el primer mes y el primer año que reconoce.
func ParsePeriod(query string) Period {
	var p Period
	rest := make([]string, 0)
	for _, w := range strings.Fields(textfold.Fold(query)) {
		if p.Month == 0 {
			if m, ok := ParseMonth(w); ok {
				p.Month = m
				continue
			}
		}
		if p.Year == 0 {
			if y, ok := parseYear(w); ok {
				p.Year = y
				continue
			}
		}
		rest = append(rest, w)
	}
	if p.HasPeriod() {
		kept := rest[:0]
		for _, w := range rest {
			if !connectors[w] {
				kept = append(kept, w)
			}
		}
		rest = kept
	}
	p.Text = strings.Join(rest, " ")
	return p
}

// Narrow devuelve el subárbol que coincide con query, conservando la estructura año/mes/día.
// Si query nombra un período, un día entra cuando pertenece al período y, si además quedó texto,
// cuando ese texto aparece en sus notas o en su clave. Sin período, solo cuenta el texto.
// Una búsqueda vacía devuelve el árbol completo.
func Narrow(t Tree, query string) Tree {
	p := ParsePeriod(query)
	if !p.HasPeriod() && p.Text == "" {
		return t
	}
	return filter(t, p)
}

// Select devuelve el subárbol de un año y, si month no es cero, de un solo mes.
func Select(t Tree, year int, month time.Month) Tree {
	return filter(t, Period{Year: year, Month: month})
}

func filter(t Tree, p Period) Tree {
	out := Tree{years: make(map[int]*Year)}
	for _, y := range t.years {
		if p.Year != 0 && y.Year != p.Year {
			continue
		}
		for _, m := range y.months {
			if p.Month != 0 && m.Month != p.Month {
				continue
			}
			for _, d := range m.days {
				if p.Text != "" && !d.matches(p.Text) {
					continue
				}
				for _, s := range d.Sales {
					out.add(d.Date, s)
				}
			}
		}
	}
	return out
}

// matches compara text (ya plegado) contra la clave del día y las notas de sus movimientos.
func (d *Day) matches(text string) bool {
	if strings.Contains(d.Key, text) {
		return true
	}
	for _, s := range d.Sales {
		if strings.Contains(textfold.Fold(s.Notes), text) {
			return true
		}
	}
	return false
}
