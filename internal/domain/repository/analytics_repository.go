package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerTotals resultado crudo de la suma de movimientos de un período.
// Expense se devuelve con signo negativo.
type LedgerTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para el tablero.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// LedgerTotals suma ingresos y gastos del dueño entre from y to (YYYY-MM-DD, ambos incluidos).
	LedgerTotals(ctx context.Context, ownerID, from, to string) (LedgerTotals, error)
}
