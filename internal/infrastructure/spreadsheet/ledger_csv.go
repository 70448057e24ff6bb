package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// Separator separador de columnas de las planillas.
const Separator = ';'

var _ ports.LedgerCSVWriter = (*LedgerCSV)(nil)

// LedgerCSV implementa ports.LedgerCSVWriter.
type LedgerCSV struct{}

// NewLedgerCSV construye el exportador.
func NewLedgerCSV() *LedgerCSV { return &LedgerCSV{} }

// WriteLedgerCSV escribe una fila por movimiento en orden de presentación y una fila final con el total.
func (LedgerCSV) WriteLedgerCSV(w io.Writer, report ports.LedgerReport, charset string) error {
	out, err := writerFor(w, charset)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(out)
	cw.Comma = Separator

	if err := cw.Write([]string{"fecha", "dia", "tipo", "monto", "observaciones"}); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	total := decimal.Zero
	for _, y := range report.Ledger.Years() {
		for _, m := range y.Months() {
			for _, d := range m.Days() {
				for _, s := range d.Sales {
					if err := cw.Write([]string{d.Date.Display(), d.Key, kindLabel(s), FormatAmount(s.Amount), s.Notes}); err != nil {
						return fmt.Errorf("csv: fila %s: %w", s.ID, err)
					}
				}
			}
		}
		total = total.Add(y.Sum())
	}
	if err := cw.Write([]string{"", "", "total", FormatAmount(total), report.Title}); err != nil {
		return fmt.Errorf("csv: total: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	if c, ok := out.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FormatAmount monto con dos decimales y coma decimal: -30 → "-30,00".
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// thousandsOnly monto con puntos de miles y sin coma decimal: "15.000", "1.250.000".
var thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseAmount acepta "1.500,50", "1500,50", "1500.50" y "15.000" (miles).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}

// kindLabel etiqueta del tipo de movimiento.
func kindLabel(s entity.Sale) string {
	if s.IsExpense() {
		return "gasto"
	}
	return "ingreso"
}
