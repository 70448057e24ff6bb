package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest entrada para cargar o editar un movimiento.
// Mode (income|expense) decide el signo al cargar; al editar se conserva el signo guardado
// y Amount se toma en valor absoluto.
type SaleRequest struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
	Mode   string          `json:"mode"`
}

// SaleResponse salida de un movimiento.
type SaleResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	DateDisplay string          `json:"date_display"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"` // income|expense
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LedgerResponse libro de ventas agrupado, ya ordenado para presentar.
type LedgerResponse struct {
	Query string          `json:"query"`
	Total decimal.Decimal `json:"total"`
	Years []LedgerYear    `json:"years"`
}

// LedgerYear rama de un año.
type LedgerYear struct {
	Year   int             `json:"year"`
	Sum    decimal.Decimal `json:"sum"`
	Months []LedgerMonth   `json:"months"`
}

// LedgerMonth rama de un mes con ingresos y gastos separados.
type LedgerMonth struct {
	Month   int             `json:"month"`
	Name    string          `json:"name"`
	Sum     decimal.Decimal `json:"sum"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Days    []LedgerDay     `json:"days"`
}

// LedgerDay hoja con los movimientos de un día.
type LedgerDay struct {
	Key     string          `json:"key"`
	Date    string          `json:"date"`
	Display string          `json:"display"`
	Sum     decimal.Decimal `json:"sum"`
	Sales   []SaleResponse  `json:"sales"`
}

// LedgerTotals ingresos, gastos y neto de un período.
type LedgerTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ReportQuery parámetros de los reportes del libro.
type ReportQuery struct {
	Year    int    `query:"year"`
	Month   int    `query:"month"`
	Charset string `query:"charset"`
}
