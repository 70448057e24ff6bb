// Package analytics contiene el tablero de inicio: estado de la cartera de clientes
// y totales del libro de ventas del día y del mes en curso.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain/client"
	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/ledger"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
)

// dashboardExpiringDays ventana de "vence pronto" en el widget del tablero.
const dashboardExpiringDays = 7

// dashboardExpiringMax cantidad de clientes en el widget de vencimientos.
const dashboardExpiringMax = 5

// ClientSnapshotter fuente de la cartera proyectada.
type ClientSnapshotter interface {
	Snapshot(ctx context.Context, ownerID string) ([]client.View, error)
}

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (sumas read-only en SQL) y la cartera proyectada.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	clients       ClientSnapshotter
	zones         *usecase.ZoneResolver
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, clients ClientSnapshotter, zones *usecase.ZoneResolver) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, clients: clients, zones: zones, now: time.Now}
}

// SetClock reemplaza el reloj.
func (uc *DashboardUseCase) SetClock(now func() time.Time) { uc.now = now }

// GetSummary construye el DashboardSummaryDTO para el dueño indicado.
//
// Tres lecturas en paralelo:
//  1. LedgerTotals(hoy)      → Today
//  2. LedgerTotals(mes)      → Month
//  3. cartera de clientes    → Clients + Expiring
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error) {
	loc := uc.zones.Location(ctx, ownerID)
	now := uc.now()
	today := dates.Today(now, loc)
	monthStart := dates.NewDay(today.Year(), today.Month(), 1)

	type totalsResult struct {
		totals repository.LedgerTotals
		err    error
	}
	type clientsResult struct {
		views []client.View
		err   error
	}

	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	clientsCh := make(chan clientsResult, 1)

	go func() {
		t, err := uc.analyticsRepo.LedgerTotals(ctx, ownerID, today.String(), today.String())
		todayCh <- totalsResult{t, err}
	}()
	go func() {
		t, err := uc.analyticsRepo.LedgerTotals(ctx, ownerID, monthStart.String(), today.String())
		monthCh <- totalsResult{t, err}
	}()
	go func() {
		views, err := uc.clients.Snapshot(ctx, ownerID)
		clientsCh <- clientsResult{views, err}
	}()

	todayRes := <-todayCh
	monthRes := <-monthCh
	clientsRes := <-clientsCh

	if todayRes.err != nil {
		return nil, fmt.Errorf("dashboard: totales de hoy: %w", todayRes.err)
	}
	if monthRes.err != nil {
		return nil, fmt.Errorf("dashboard: totales del mes: %w", monthRes.err)
	}
	if clientsRes.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clientsRes.err)
	}

	expiring := client.ExpiringWithin(clientsRes.views, dashboardExpiringDays)
	if len(expiring) > dashboardExpiringMax {
		expiring = expiring[:dashboardExpiringMax]
	}
	items := make([]dto.ClientView, 0, len(expiring))
	for _, v := range expiring {
		items = append(items, usecase.ToClientView(v, now))
	}

	return &dto.DashboardSummaryDTO{
		Clients:   usecase.ToStatsResponse(client.Summarize(clientsRes.views)),
		Today:     toTotals(todayRes.totals),
		Month:     toTotals(monthRes.totals),
		Expiring:  items,
		DateLabel: usecase.PeriodLabel(today.Year(), int(today.Month())),
	}, nil
}

func toTotals(t repository.LedgerTotals) dto.LedgerTotals {
	return usecase.ToLedgerTotals(ledger.Totals{
		Income:  t.Income.Round(2),
		Expense: t.Expense.Round(2),
		Net:     t.Income.Add(t.Expense).Round(2),
	})
}
