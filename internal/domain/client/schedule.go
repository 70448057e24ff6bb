// Package client contiene las reglas de negocio de los socios: invariantes del horario,
// proyección a vista con días restantes, filtro/orden del listado y estadísticas.
package client

import (
	"fmt"
	"strings"

	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// scheduleSeparator separa inicio y fin en "HH:MM - HH:MM".
const scheduleSeparator = " - "

// NormalizeDays valida el invariante de días: exactamente ["Libre"] o un subconjunto
// no vacío y sin repetidos de {L,M,X,J,V,S,D}. Devuelve los días en orden de semana.
func NormalizeDays(days []string) ([]string, error) {
	if len(days) == 0 {
		return nil, domain.Invalid("days", "seleccioná al menos un día o Libre")
	}
	seen := make(map[string]bool, len(days))
	for _, raw := range days {
		code := strings.TrimSpace(raw)
		if strings.EqualFold(code, entity.DayFree) {
			code = entity.DayFree
		} else {
			code = strings.ToUpper(code)
		}
		if code != entity.DayFree && !isWeekday(code) {
			return nil, domain.Invalid("days", fmt.Sprintf("día desconocido: %s", raw))
		}
		if seen[code] {
			return nil, domain.Invalid("days", fmt.Sprintf("día repetido: %s", code))
		}
		seen[code] = true
	}
	if seen[entity.DayFree] {
		if len(seen) > 1 {
			return nil, domain.Invalid("days", "Libre no se combina con días concretos")
		}
		return []string{entity.DayFree}, nil
	}
	out := make([]string, 0, len(seen))
	for _, code := range entity.WeekdayCodes {
		if seen[code] {
			out = append(out, code)
		}
	}
	return out, nil
}

func isWeekday(code string) bool {
	for _, c := range entity.WeekdayCodes {
		if c == code {
			return true
		}
	}
	return false
}

// IsFlexible informa si el cliente no tiene días fijos.
func IsFlexible(days []string, schedule string) bool {
	if len(days) == 1 && days[0] == entity.DayFree {
		return true
	}
	return schedule == entity.ScheduleFree
}

// BuildSchedule deriva el horario a partir de los días: "Libre" para horario flexible,
// si no "HH:MM - HH:MM" con fin posterior al inicio.
func BuildSchedule(days []string, start, end string) (string, error) {
	if IsFlexible(days, "") {
		return entity.ScheduleFree, nil
	}
	from, err := dates.ParseClock(start)
	if err != nil {
		return "", domain.Invalid("start_time", "hora de inicio inválida, usar HH:MM")
	}
	to, err := dates.ParseClock(end)
	if err != nil {
		return "", domain.Invalid("end_time", "hora de fin inválida, usar HH:MM")
	}
	if to <= from {
		return "", domain.Invalid("end_time", "la hora de fin debe ser posterior a la de inicio")
	}
	return from.String() + scheduleSeparator + to.String(), nil
}

// StartTime devuelve la parte anterior a " - " del horario ("Libre" y "N/A" quedan igual).
func StartTime(schedule string) string {
	before, _, _ := strings.Cut(schedule, scheduleSeparator)
	return before
}

// WeekdayCount cuenta los días concretos (Libre cuenta cero).
func WeekdayCount(days []string) int {
	n := 0
	for _, d := range days {
		if d != entity.DayFree {
			n++
		}
	}
	return n
}
