package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/spreadsheet"
)

type capturePDF struct{ last ports.LedgerReport }

func (c *capturePDF) GenerateLedgerPDF(_ context.Context, r ports.LedgerReport) ([]byte, error) {
	c.last = r
	return []byte("%PDF"), nil
}

func newReportFixture(t *testing.T) (*usecase.ReportUseCase, *capturePDF) {
	t.Helper()
	sales := &memSales{}
	saleUC := newSaleUC(sales)
	for _, in := range []dto.SaleRequest{
		{Date: "2024-03-05", Amount: money("100"), Notes: "Cuota de Martín"},
		{Date: "2024-03-20", Amount: money("40"), Notes: "Compra de café", Mode: entity.SaleModeExpense},
		{Date: "2024-02-01", Amount: money("50"), Notes: "Clase suelta"},
		{Date: "2023-12-31", Amount: money("70"), Notes: "Fin de año"},
	} {
		_, err := saleUC.Add(context.Background(), ownerA, in)
		require.NoError(t, err)
	}
	owners := &memOwners{items: map[string]entity.Owner{
		ownerA: {ID: ownerA, BusinessName: "Gimnasio Centro", Status: entity.OwnerStatusActive},
	}}
	pdf := &capturePDF{}
	uc := usecase.NewReportUseCase(saleUC, owners, usecase.NewZoneResolver(owners, baires, nil), pdf, spreadsheet.NewLedgerCSV())
	return uc, pdf
}

func TestReportPDF_Mes(t *testing.T) {
	uc, pdf := newReportFixture(t)

	doc, name, err := uc.PDF(context.Background(), ownerA, dto.ReportQuery{Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), doc)
	assert.Equal(t, "libro-2024-03.pdf", name)
	assert.Equal(t, "Marzo 2024", pdf.last.Title)
	assert.Equal(t, "Gimnasio Centro", pdf.last.Owner.BusinessName)

	years := pdf.last.Ledger.Years()
	require.Len(t, years, 1)
	months := years[0].Months()
	require.Len(t, months, 1)
	assert.Equal(t, time.March, months[0].Month)
	assert.True(t, money("60").Equal(months[0].Sum()))
}

func TestReportPDF_AnioCompleto(t *testing.T) {
	uc, pdf := newReportFixture(t)

	_, name, err := uc.PDF(context.Background(), ownerA, dto.ReportQuery{Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "libro-2024.pdf", name)
	assert.Equal(t, "Año 2024", pdf.last.Title)
	assert.True(t, money("110").Equal(pdf.last.Ledger.SumYear(2024)))
	assert.True(t, pdf.last.Ledger.SumYear(2023).IsZero(), "otros años no entran")
}

func TestReport_Rechazos(t *testing.T) {
	uc, _ := newReportFixture(t)
	ctx := context.Background()

	_, _, err := uc.PDF(ctx, ownerA, dto.ReportQuery{Year: 2024, Month: 13})
	field, _ := domain.FieldOf(err)
	assert.Equal(t, "month", field)

	_, _, err = uc.PDF(ctx, ownerA, dto.ReportQuery{Year: 99})
	field, _ = domain.FieldOf(err)
	assert.Equal(t, "year", field)

	_, _, err = uc.CSV(ctx, ownerA, dto.ReportQuery{Year: 2024, Charset: "ebcdic"})
	field, _ = domain.FieldOf(err)
	assert.Equal(t, "charset", field)

	_, _, err = uc.PDF(ctx, "owner-desconocido", dto.ReportQuery{Year: 2024})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportCSV_Latin1(t *testing.T) {
	uc, _ := newReportFixture(t)

	data, name, err := uc.CSV(context.Background(), ownerA, dto.ReportQuery{Year: 2024, Month: 3, Charset: "latin1"})
	require.NoError(t, err)
	assert.Equal(t, "libro-2024-03.csv", name)
	assert.False(t, strings.Contains(string(data), "Martín"), "sale en Windows-1252, no en UTF-8")
	assert.Contains(t, string(data), "total;60,00;Marzo 2024")
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Septiembre 2024", usecase.PeriodLabel(2024, 9))
	assert.Equal(t, "Año 2023", usecase.PeriodLabel(2023, 0))
}

func TestZoneResolver(t *testing.T) {
	owners := &memOwners{items: map[string]entity.Owner{
		"madrid":   {ID: "madrid", Timezone: "Europe/Madrid"},
		"sin-zona": {ID: "sin-zona"},
		"rota":     {ID: "rota", Timezone: "Marte/Olimpo"},
	}}
	z := usecase.NewZoneResolver(owners, baires, nil)
	ctx := context.Background()

	if madrid, err := time.LoadLocation("Europe/Madrid"); err == nil {
		assert.Equal(t, madrid.String(), z.Location(ctx, "madrid").String())
	}
	assert.Equal(t, baires, z.Location(ctx, "sin-zona"))
	assert.Equal(t, baires, z.Location(ctx, "rota"))
	assert.Equal(t, baires, z.Location(ctx, "inexistente"))

	reads := owners.reads
	z.Location(ctx, "sin-zona")
	assert.Equal(t, reads, owners.reads, "la zona queda en caché")

	z.Forget("sin-zona")
	z.Location(ctx, "sin-zona")
	assert.Equal(t, reads+1, owners.reads)

	owners.err = errStorage
	assert.Equal(t, baires, z.Location(ctx, "otra"))
	owners.err = nil
	z.Location(ctx, "otra")
	assert.Equal(t, reads+3, owners.reads, "un error de lectura no se cachea")
}
