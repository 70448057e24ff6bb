package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/ledger"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
)

// Charsets aceptados por la exportación CSV.
const (
	CharsetUTF8   = "utf-8"
	CharsetLatin1 = "latin1"
)

// ReportUseCase genera las versiones exportables del libro de ventas (PDF y CSV).
type ReportUseCase struct {
	sales  *SaleUseCase
	owners repository.OwnerRepository
	zones  *ZoneResolver
	pdf    ports.LedgerPDFGenerator
	csv    ports.LedgerCSVWriter
}

// NewReportUseCase construye el caso de uso inyectando los generadores.
func NewReportUseCase(
	sales *SaleUseCase,
	owners repository.OwnerRepository,
	zones *ZoneResolver,
	pdf ports.LedgerPDFGenerator,
	csv ports.LedgerCSVWriter,
) *ReportUseCase {
	return &ReportUseCase{sales: sales, owners: owners, zones: zones, pdf: pdf, csv: csv}
}

// PDF genera el libro del período en PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvalidInput     si el período no es válido.
//   - domain.ErrNotFound         si la cuenta no existe.
func (uc *ReportUseCase) PDF(ctx context.Context, ownerID string, q dto.ReportQuery) ([]byte, string, error) {
	report, err := uc.build(ctx, ownerID, q)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateLedgerPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: %w", err)
	}
	return doc, filename(report, "pdf"), nil
}

// CSV genera el libro del período como planilla, en UTF-8 o Windows-1252.
func (uc *ReportUseCase) CSV(ctx context.Context, ownerID string, q dto.ReportQuery) ([]byte, string, error) {
	charset := strings.ToLower(strings.TrimSpace(q.Charset))
	if charset != "" && charset != CharsetUTF8 && charset != CharsetLatin1 {
		return nil, "", domain.Invalid("charset", "charset inválido, usar utf-8 o latin1")
	}
	report, err := uc.build(ctx, ownerID, q)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := uc.csv.WriteLedgerCSV(&buf, report, charset); err != nil {
		return nil, "", fmt.Errorf("reporte csv: %w", err)
	}
	return buf.Bytes(), filename(report, "csv"), nil
}

func (uc *ReportUseCase) build(ctx context.Context, ownerID string, q dto.ReportQuery) (ports.LedgerReport, error) {
	if q.Month < 0 || q.Month > 12 {
		return ports.LedgerReport{}, domain.Invalid("month", "mes inválido, usar 1-12")
	}
	year := q.Year
	if year == 0 {
		year = time.Now().In(uc.zones.Location(ctx, ownerID)).Year()
	}
	if year < 1000 || year > 9999 {
		return ports.LedgerReport{}, domain.Invalid("year", "año inválido")
	}
	owner, err := uc.owners.GetByID(ctx, ownerID)
	if err != nil {
		return ports.LedgerReport{}, fmt.Errorf("reporte: obtener cuenta: %w", err)
	}
	if owner == nil {
		return ports.LedgerReport{}, domain.ErrNotFound
	}
	tree, err := uc.sales.Tree(ctx, ownerID)
	if err != nil {
		return ports.LedgerReport{}, err
	}
	return ports.LedgerReport{
		Owner:  owner,
		Year:   year,
		Month:  q.Month,
		Title:  PeriodLabel(year, q.Month),
		Ledger: ledger.Select(tree, year, time.Month(q.Month)),
	}, nil
}

// PeriodLabel etiqueta legible del período, ej: "Marzo 2024" o "Año 2024".
func PeriodLabel(year, month int) string {
	if month == 0 {
		return fmt.Sprintf("Año %d", year)
	}
	name := ledger.MonthName(time.Month(month))
	return fmt.Sprintf("%s %d", strings.ToUpper(name[:1])+name[1:], year)
}

func filename(r ports.LedgerReport, ext string) string {
	if r.Month == 0 {
		return fmt.Sprintf("libro-%d.%s", r.Year, ext)
	}
	return fmt.Sprintf("libro-%d-%02d.%s", r.Year, r.Month, ext)
}
