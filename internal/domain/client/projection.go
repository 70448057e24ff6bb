package client

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// ScheduleUnknown horario mostrado cuando el registro no trae uno.
const ScheduleUnknown = "N/A"

// View es la proyección de un cliente con los campos derivados calculados al leer.
type View struct {
	ID            string
	DNI           string
	Name          string
	ExpiresOn     dates.Day
	DaysRemaining int
	ExpiryKnown   bool // false si la fecha de vencimiento falta o es inválida
	Days          []string
	Schedule      string
	Amount        decimal.Decimal
	Email         string
	Phone         string
	BackupPhone   string
	Comments      string
	UpdatedAt     *string // RFC3339 o nil
}

// Active informa si la suscripción está vigente (días restantes > 0).
func (v View) Active() bool { return v.ExpiryKnown && v.DaysRemaining > 0 }

// Expired informa si la suscripción venció (días restantes <= 0).
// Una fecha desconocida no cuenta como vencida.
func (v View) Expired() bool { return v.ExpiryKnown && v.DaysRemaining <= 0 }

// Flexible informa si el cliente tiene horario libre.
func (v View) Flexible() bool { return IsFlexible(v.Days, v.Schedule) }

// StartTime hora de inicio del horario, usada para ordenar.
func (v View) StartTime() string { return StartTime(v.Schedule) }

// Project normaliza un registro crudo. Los días restantes se recalculan siempre desde
// la fecha de vencimiento; nunca se toman del almacenamiento.
func Project(c entity.Client, now time.Time, loc *time.Location) View {
	v := View{
		ID:          c.ID,
		DNI:         c.DNI,
		Name:        c.Name,
		ExpiresOn:   dates.Canonical(c.ExpiresOn, loc),
		Days:        c.Days,
		Schedule:    c.Schedule,
		Amount:      decimal.Zero,
		Email:       c.Email,
		Phone:       c.Phone,
		BackupPhone: c.BackupPhone,
		Comments:    c.Comments,
	}
	v.DaysRemaining, v.ExpiryKnown = dates.DaysRemaining(v.ExpiresOn, now, loc)
	if v.Days == nil {
		v.Days = []string{}
	}
	if v.Schedule == "" {
		v.Schedule = ScheduleUnknown
	}
	if c.Amount != nil {
		v.Amount = *c.Amount
	}
	if c.UpdatedAt != nil && !c.UpdatedAt.IsZero() {
		s := c.UpdatedAt.UTC().Format(time.RFC3339)
		v.UpdatedAt = &s
	}
	return v
}

// ProjectAll normaliza la colección completa. Un registro con fecha inválida no bloquea al resto.
func ProjectAll(list []entity.Client, now time.Time, loc *time.Location) []View {
	out := make([]View, 0, len(list))
	for _, c := range list {
		out = append(out, Project(c, now, loc))
	}
	return out
}
