package ports

import (
	"context"
	"io"

	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/ledger"
)

// LedgerReport datos de un período del libro de ventas listos para exportar.
type LedgerReport struct {
	Owner  *entity.Owner
	Year   int
	Month  int // 0 = año completo
	Title  string
	Ledger ledger.Tree
}

// LedgerPDFGenerator define el puerto de salida para la versión imprimible del libro.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, report LedgerReport) ([]byte, error)
}

// LedgerCSVWriter define el puerto de salida para la exportación a planilla.
// charset vacío o "utf-8" escribe UTF-8; "latin1" escribe Windows-1252.
type LedgerCSVWriter interface {
	WriteLedgerCSV(w io.Writer, report LedgerReport, charset string) error
}
