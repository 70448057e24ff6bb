// Package dates canoniza las distintas representaciones de fecha que llegan al sistema
// (strings ISO, time.Time, timestamps de terceros) a un día de calendario sin hora,
// y calcula diferencias en días contra "hoy".
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layouts usados en la frontera de almacenamiento y en la presentación.
const (
	LayoutISO     = "2006-01-02"
	LayoutDisplay = "02/01/2006"
)

// Day es una fecha de calendario sin componente horario.
// El valor cero representa una fecha desconocida (entrada vacía o inválida).
type Day struct {
	t time.Time // medianoche UTC de la fecha civil
}

// NewDay construye el día civil y/m/d. Valores fuera de rango se normalizan como en time.Date.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf devuelve el día civil de t visto en loc (nil = la ubicación propia de t).
func DayOf(t time.Time, loc *time.Location) Day {
	if t.IsZero() {
		return Day{}
	}
	if loc != nil {
		t = t.In(loc)
	}
	return NewDay(t.Date())
}

// Today devuelve el día civil de now en loc.
func Today(now time.Time, loc *time.Location) Day {
	return DayOf(now, loc)
}

// IsZero informa si la fecha es desconocida.
func (d Day) IsZero() bool { return d.t.IsZero() }

// Year, Month y DayOfMonth exponen los componentes civiles.
func (d Day) Year() int         { return d.t.Year() }
func (d Day) Month() time.Month { return d.t.Month() }
func (d Day) DayOfMonth() int   { return d.t.Day() }

// String devuelve YYYY-MM-DD, o "" si la fecha es desconocida.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(LayoutISO)
}

// Display devuelve DD/MM/YYYY, o "" si la fecha es desconocida.
func (d Day) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(LayoutDisplay)
}

// Key devuelve la clave de día del libro de ventas: D/M/Y sin ceros a la izquierda.
func (d Day) Key() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", d.t.Day(), int(d.t.Month()), d.t.Year())
}

// Sub devuelve d - o en días enteros. Ambos son medianoche UTC: la resta en segundos
// es múltiplo exacto de un día.
func (d Day) Sub(o Day) int {
	return int((d.t.Unix() - o.t.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Compare devuelve -1, 0 o 1. Una fecha desconocida es anterior a cualquier fecha conocida.
func (d Day) Compare(o Day) int {
	switch {
	case d.t.Before(o.t):
		return -1
	case d.t.After(o.t):
		return 1
	default:
		return 0
	}
}

// Before informa si d es anterior a o.
func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }

// asTimer y toDater reconocen timestamps de terceros por su método de conversión.
type asTimer interface{ AsTime() time.Time }
type toDater interface{ ToDate() time.Time }

// Canonical convierte v en un día de calendario. Acepta string (YYYY-MM-DD, RFC3339,
// DD/MM/YYYY), Day, time.Time, *time.Time y cualquier valor con AsTime() o ToDate().
// Las entradas nulas, vacías o no reconocidas devuelven el Day cero; nunca hace panic.
func Canonical(v any, loc *time.Location) Day {
	switch x := v.(type) {
	case nil:
		return Day{}
	case Day:
		return x
	case string:
		return ParseString(x, loc)
	case *string:
		if x == nil {
			return Day{}
		}
		return ParseString(*x, loc)
	case time.Time:
		return DayOf(x, loc)
	case *time.Time:
		if x == nil {
			return Day{}
		}
		return DayOf(*x, loc)
	case asTimer:
		return DayOf(safeTime(x.AsTime), loc)
	case toDater:
		return DayOf(safeTime(x.ToDate), loc)
	default:
		return Day{}
	}
}

// safeTime protege contra timestamps nil envueltos en una interfaz.
func safeTime(fn func() time.Time) (t time.Time) {
	defer func() {
		if recover() != nil {
			t = time.Time{}
		}
	}()
	return fn()
}

// ParseString interpreta s como fecha. Los instantes (RFC3339) se llevan al día civil de loc.
func ParseString(s string, loc *time.Location) Day {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}
	}
	if t, err := time.Parse(LayoutISO, s); err == nil {
		return NewDay(t.Date())
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t, loc)
		}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", LayoutDisplay, "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDay(t.Date())
		}
	}
	return Day{}
}

// Normalize devuelve la forma YYYY-MM-DD de v y si pudo canonizarse.
// Un string ya canónico vuelve idéntico.
func Normalize(v any, loc *time.Location) (string, bool) {
	d := Canonical(v, loc)
	if d.IsZero() {
		return "", false
	}
	return d.String(), true
}

// DaysRemaining devuelve Canonical(v) - hoy en días enteros: mismo día = 0, ayer = -1,
// mañana = 1. ok es false si la fecha es desconocida; en ese caso el número no debe usarse.
// El resultado no se recorta a cero (ver ClampNonNegative).
func DaysRemaining(v any, now time.Time, loc *time.Location) (days int, ok bool) {
	d := Canonical(v, loc)
	if d.IsZero() {
		return 0, false
	}
	return d.Sub(Today(now, loc)), true
}

// ClampNonNegative recorta n a cero para presentaciones que no muestran negativos.
func ClampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
