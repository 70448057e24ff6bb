package entity

import "time"

// Slot es un turno con cupo limitado (clase, sesión de barbería) en un día concreto.
type Slot struct {
	ID        string
	OwnerID   string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Capacity  int
	ClientIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Free devuelve los lugares disponibles.
func (s Slot) Free() int {
	n := s.Capacity - len(s.ClientIDs)
	if n < 0 {
		return 0
	}
	return n
}

// Has informa si el cliente ya tiene lugar en el turno.
func (s Slot) Has(clientID string) bool {
	for _, id := range s.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}
