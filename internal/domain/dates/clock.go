package dates

import (
	"fmt"
	"strings"
	"time"
)

// Clock es una hora del día en minutos desde la medianoche (00:00–23:59).
type Clock int

// ParseClock interpreta "HH:MM" en formato 24 h.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q: se espera HH:MM", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// String devuelve la hora como HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// TimeAgo devuelve una etiqueta aproximada ("hace 5 minutos") del tiempo transcurrido
// entre instant y now. Un instante cero devuelve "".
func TimeAgo(instant, now time.Time) string {
	if instant.IsZero() {
		return ""
	}
	diff := now.Sub(instant)
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < time.Minute:
		return plural(int(diff/time.Second), "segundo", "segundos")
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minuto", "minutos")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hora", "horas")
	default:
		return plural(int(diff/(24*time.Hour)), "día", "días")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "hace 1 " + one
	}
	return fmt.Sprintf("hace %d %s", n, many)
}
