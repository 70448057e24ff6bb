package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de carga de un movimiento: determinan el signo del monto.
const (
	SaleModeIncome  = "income"
	SaleModeExpense = "expense"
)

// Sale es un movimiento del libro de ventas: ingreso (monto positivo) o gasto (negativo).
type Sale struct {
	ID        string
	OwnerID   string
	Date      string // YYYY-MM-DD
	Amount    decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpense informa si el movimiento es un gasto.
func (s Sale) IsExpense() bool { return s.Amount.IsNegative() }

// SaleRecord es una venta tal como sale del almacenamiento, antes de normalizar la fecha.
type SaleRecord struct {
	Sale
	RawDate any
}
