package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/feed"
)

func newSaleUC(repo *memSales) *usecase.SaleUseCase {
	uc := usecase.NewSaleUseCase(repo, feed.NewMemory(), usecase.NewZoneResolver(nil, baires, nil), nil)
	uc.SetClock(clock)
	return uc
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaleAdd_MontoCeroSinEscritura(t *testing.T) {
	repo := &memSales{}
	uc := newSaleUC(repo)

	for _, mode := range []string{"", entity.SaleModeIncome, entity.SaleModeExpense} {
		_, err := uc.Add(context.Background(), ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: decimal.Zero, Notes: "Cuota mensual", Mode: mode})
		require.Error(t, err)
		field, _ := domain.FieldOf(err)
		assert.Equal(t, "amount", field)
	}
	assert.Zero(t, repo.writes)
}

func TestSaleAdd_MontoSeRedondeaACentavos(t *testing.T) {
	repo := &memSales{}
	uc := newSaleUC(repo)
	ctx := context.Background()

	_, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("0.004"), Notes: "Redondeo a cero"})
	require.Error(t, err)
	field, _ := domain.FieldOf(err)
	assert.Equal(t, "amount", field)
	assert.Zero(t, repo.writes)

	out, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("1.005"), Notes: "Clase suelta"})
	require.NoError(t, err)
	assert.Equal(t, "1.01", out.Amount.String())

	gasto, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("2.344"), Notes: "Compra de agua", Mode: entity.SaleModeExpense})
	require.NoError(t, err)
	assert.Equal(t, "-2.34", gasto.Amount.String())

	_, err = uc.Update(ctx, ownerA, out.ID, dto.SaleRequest{Date: "2024-03-15", Amount: money("-0.001"), Notes: "Clase suelta"})
	field, _ = domain.FieldOf(err)
	assert.Equal(t, "amount", field)
	assert.Equal(t, 2, repo.writes)
}

func TestSaleAdd_ModoDecideElSigno(t *testing.T) {
	repo := &memSales{}
	uc := newSaleUC(repo)
	ctx := context.Background()

	in, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("-1500"), Notes: "Cuota mensual"})
	require.NoError(t, err)
	assert.True(t, money("1500").Equal(in.Amount), "sin modo = ingreso, se toma el valor absoluto")
	assert.Equal(t, entity.SaleModeIncome, in.Kind)

	out, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "15/03/2024", Amount: money("30.5"), Notes: "Compra de toallas", Mode: "EXPENSE"})
	require.NoError(t, err)
	assert.True(t, money("-30.5").Equal(out.Amount))
	assert.Equal(t, entity.SaleModeExpense, out.Kind)
	assert.Equal(t, "2024-03-15", out.Date)
	assert.Equal(t, "15/03/2024", out.DateDisplay)

	_, err = uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("10"), Notes: "Cuota mensual", Mode: "gift"})
	field, _ := domain.FieldOf(err)
	assert.Equal(t, "mode", field)
	assert.Equal(t, 2, repo.writes)
}

func TestSaleAdd_Validaciones(t *testing.T) {
	uc := newSaleUC(&memSales{})
	cases := []struct {
		in    dto.SaleRequest
		field string
	}{
		{dto.SaleRequest{Date: "ayer", Amount: money("10"), Notes: "Cuota mensual"}, "date"},
		{dto.SaleRequest{Date: "2024-03-15", Amount: money("10"), Notes: " ab  "}, "notes"},
		{dto.SaleRequest{Date: "2024-03-15", Amount: money("10"), Notes: "ñandú"}, ""},
	}
	for _, tc := range cases {
		_, err := uc.Add(context.Background(), ownerA, tc.in)
		if tc.field == "" {
			assert.NoError(t, err, "cinco caracteres alcanzan aunque ocupen más bytes")
			continue
		}
		field, _ := domain.FieldOf(err)
		assert.Equal(t, tc.field, field)
	}
}

func TestSaleUpdate_ConservaElSigno(t *testing.T) {
	repo := &memSales{}
	uc := newSaleUC(repo)
	ctx := context.Background()

	expense, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("30"), Notes: "Compra de toallas", Mode: entity.SaleModeExpense})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, ownerA, expense.ID, dto.SaleRequest{Date: "2024-03-16", Amount: money("45"), Notes: "Compra de toallas grandes"})
	require.NoError(t, err)
	assert.True(t, money("-45").Equal(updated.Amount), "un gasto sigue siendo gasto")
	assert.Equal(t, "2024-03-16", updated.Date)

	income, err := uc.Add(ctx, ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("100"), Notes: "Cuota mensual"})
	require.NoError(t, err)
	updated, err = uc.Update(ctx, ownerA, income.ID, dto.SaleRequest{Date: "2024-03-15", Amount: money("-120"), Notes: "Cuota mensual", Mode: entity.SaleModeExpense})
	require.NoError(t, err)
	assert.True(t, money("120").Equal(updated.Amount), "el modo no cambia el signo guardado")

	_, err = uc.Update(ctx, ownerA, income.ID, dto.SaleRequest{Date: "2024-03-15", Amount: decimal.Zero, Notes: "Cuota mensual"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, ownerA, "nope", dto.SaleRequest{Date: "2024-03-15", Amount: money("1"), Notes: "Cuota mensual"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleSnapshot_DescartaFechasInvalidasYOrdena(t *testing.T) {
	repo := &memSales{records: []entity.SaleRecord{
		{Sale: entity.Sale{ID: "a", OwnerID: ownerA, Amount: money("10"), Notes: "Uno"}, RawDate: "2024-01-05"},
		{Sale: entity.Sale{ID: "b", OwnerID: ownerA, Amount: money("20"), Notes: "Dos"}, RawDate: "fecha rota"},
		{Sale: entity.Sale{ID: "c", OwnerID: ownerA, Amount: money("30"), Notes: "Tres"}, RawDate: time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)},
		{Sale: entity.Sale{ID: "d", OwnerID: ownerA, Amount: money("40"), Notes: "Cuatro"}, RawDate: nil},
	}}
	uc := newSaleUC(repo)

	sales, err := uc.Snapshot(context.Background(), ownerA)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "c", sales[0].ID)
	assert.Equal(t, "2024-02-29", sales[0].Date, "el instante se lleva al día de la cuenta")
	assert.Equal(t, "a", sales[1].ID)
}

func TestSaleLedger_AgrupaYBusca(t *testing.T) {
	repo := &memSales{}
	uc := newSaleUC(repo)
	ctx := context.Background()
	for _, in := range []dto.SaleRequest{
		{Date: "2024-01-05", Amount: money("100"), Notes: "Cuota mensual Ana"},
		{Date: "2024-01-05", Amount: money("30"), Notes: "Compra de toallas", Mode: entity.SaleModeExpense},
		{Date: "2024-02-01", Amount: money("50"), Notes: "Clase suelta"},
	} {
		_, err := uc.Add(ctx, ownerA, in)
		require.NoError(t, err)
	}

	all, err := uc.Ledger(ctx, ownerA, "")
	require.NoError(t, err)
	assert.True(t, money("120").Equal(all.Total))
	require.Len(t, all.Years, 1)
	require.Len(t, all.Years[0].Months, 2)
	assert.Equal(t, 2, all.Years[0].Months[0].Month, "meses del más reciente al más antiguo")
	jan := all.Years[0].Months[1]
	assert.Equal(t, "enero", jan.Name)
	assert.True(t, money("100").Equal(jan.Income))
	assert.True(t, money("-30").Equal(jan.Expense))
	assert.True(t, money("70").Equal(jan.Days[0].Sum))

	jan2024, err := uc.Ledger(ctx, ownerA, "Enero 2024")
	require.NoError(t, err)
	require.Len(t, jan2024.Years, 1)
	require.Len(t, jan2024.Years[0].Months, 1)
	assert.True(t, money("70").Equal(jan2024.Total))

	towels, err := uc.Ledger(ctx, ownerA, "toallas")
	require.NoError(t, err)
	assert.True(t, money("70").Equal(towels.Total), "el día que coincide entra completo")
}

func TestSaleDelete(t *testing.T) {
	repo := &memSales{}
	uc := newSaleUC(repo)
	s, err := uc.Add(context.Background(), ownerA, dto.SaleRequest{Date: "2024-03-15", Amount: money("10"), Notes: "Cuota mensual"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), ownerA, s.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), ownerA, s.ID), domain.ErrNotFound)
}
