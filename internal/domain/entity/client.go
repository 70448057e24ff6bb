package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de día de la semana para el horario de un cliente.
// DayFree ("Libre") indica horario flexible y nunca se combina con días concretos.
const (
	DayMonday    = "L"
	DayTuesday   = "M"
	DayWednesday = "X"
	DayThursday  = "J"
	DayFriday    = "V"
	DaySaturday  = "S"
	DaySunday    = "D"
	DayFree      = "Libre"
)

// WeekdayCodes orden canónico de los días de la semana.
var WeekdayCodes = []string{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday}

// ScheduleFree horario de un cliente sin días fijos.
const ScheduleFree = DayFree

// Client representa un socio del gimnasio / cliente de la barbería bajo un dueño.
type Client struct {
	ID          string
	OwnerID     string
	DNI         string
	Name        string
	ExpiresOn   any // YYYY-MM-DD en almacenamiento; puede llegar como time.Time u otro timestamp
	Days        []string
	Schedule    string // "Libre" o "HH:MM - HH:MM"
	Amount      *decimal.Decimal
	Email       string
	Phone       string
	BackupPhone string
	Comments    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
