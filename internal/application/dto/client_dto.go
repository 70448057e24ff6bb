package dto

import "github.com/shopspring/decimal"

// ClientRequest entrada para alta y modificación de un cliente.
// Days = ["Libre"] para horario flexible; en ese caso StartTime y EndTime se ignoran.
type ClientRequest struct {
	DNI         string           `json:"dni"`
	Name        string           `json:"name"`
	ExpiresOn   string           `json:"expires_on"` // YYYY-MM-DD o DD/MM/YYYY
	Days        []string         `json:"days"`
	StartTime   string           `json:"start_time"` // HH:MM
	EndTime     string           `json:"end_time"`   // HH:MM
	Amount      *decimal.Decimal `json:"amount"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	BackupPhone string           `json:"backup_phone"`
	Comments    string           `json:"comments"`
}

// Estados de suscripción expuestos en ClientView.
const (
	ClientStatusActive  = "active"
	ClientStatusExpired = "expired"
	ClientStatusUnknown = "unknown"
)

// ClientView salida de un cliente con los días restantes calculados al leer.
// DaysRemaining es null cuando la fecha de vencimiento falta o es inválida.
type ClientView struct {
	ID               string          `json:"id"`
	DNI              string          `json:"dni"`
	Name             string          `json:"name"`
	ExpiresOn        string          `json:"expires_on"`
	ExpiresOnDisplay string          `json:"expires_on_display"`
	DaysRemaining    *int            `json:"days_remaining"`
	Status           string          `json:"status"`
	Days             []string        `json:"days"`
	Schedule         string          `json:"schedule"`
	Amount           decimal.Decimal `json:"amount"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	BackupPhone      string          `json:"backup_phone,omitempty"`
	Comments         string          `json:"comments,omitempty"`
	UpdatedAt        *string         `json:"updated_at"`
	UpdatedAgo       string          `json:"updated_ago,omitempty"`
}

// ClientListQuery parámetros de GET /api/clients y /api/clients/stream.
type ClientListQuery struct {
	Q    string `query:"q"`
	Sort string `query:"sort"` // name|dni|expires_on|days|start_time|comments|days_remaining
	Dir  string `query:"dir"`  // asc|desc
}

// ClientListResponse listado filtrado y ordenado.
type ClientListResponse struct {
	Items []ClientView `json:"items"`
	Total int          `json:"total"`
	Query string       `json:"query"`
	Sort  string       `json:"sort"`
	Dir   string       `json:"dir"`
}

// ClientStatsResponse conteos del tablero de clientes.
type ClientStatsResponse struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Expired         int `json:"expired"`
	RecentlyExpired int `json:"recently_expired"`
	FixedSchedule   int `json:"fixed_schedule"`
	Flexible        int `json:"flexible"`
	UnknownExpiry   int `json:"unknown_expiry"`
}
