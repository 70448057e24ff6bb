package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// LedgerTotals suma ingresos (monto > 0) y gastos (monto < 0) del período en una sola pasada.
func (r *AnalyticsRepo) LedgerTotals(ctx context.Context, ownerID, from, to string) (repository.LedgerTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(amount) FILTER (WHERE amount > 0), 0) AS income,
	    COALESCE(SUM(amount) FILTER (WHERE amount < 0), 0) AS expense
	FROM sales
	WHERE owner_id = $1
	  AND date BETWEEN $2::date AND $3::date`

	var t repository.LedgerTotals
	if err := r.q.QueryRow(ctx, query, ownerID, from, to).Scan(&t.Income, &t.Expense); err != nil {
		return repository.LedgerTotals{}, fmt.Errorf("analytics.LedgerTotals: %w", err)
	}
	return t, nil
}
