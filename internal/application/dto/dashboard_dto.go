package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Clients ClientStatsResponse `json:"clients"`

	Today LedgerTotals `json:"today"`
	Month LedgerTotals `json:"month"`

	// Activos que vencen en los próximos días, el más urgente primero
	Expiring []ClientView `json:"expiring"`

	DateLabel string `json:"date_label"` // ej: "Marzo 2024"
}
