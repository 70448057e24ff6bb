package client

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/gymdesk-api/pkg/textfold"
)

// SortField campo por el que se ordena el listado de clientes.
type SortField string

const (
	SortByName          SortField = "name"
	SortByDNI           SortField = "dni"
	SortByExpiresOn     SortField = "expires_on"
	SortByDays          SortField = "days"
	SortByStartTime     SortField = "start_time"
	SortByComments      SortField = "comments"
	SortByDaysRemaining SortField = "days_remaining"
)

var sortFields = map[SortField]bool{
	SortByName: true, SortByDNI: true, SortByExpiresOn: true, SortByDays: true,
	SortByStartTime: true, SortByComments: true, SortByDaysRemaining: true,
}

// ParseSortField valida el nombre de campo recibido por query string.
func ParseSortField(s string) (SortField, bool) {
	f := SortField(strings.TrimSpace(s))
	return f, sortFields[f]
}

// SortState campo y dirección actuales. Vive solo en memoria del que lista.
type SortState struct {
	Field SortField
	Desc  bool
}

// DefaultSort días restantes ascendente: primero los que vencen antes.
func DefaultSort() SortState {
	return SortState{Field: SortByDaysRemaining}
}

// Toggle aplica una nueva selección de campo: el mismo campo invierte la dirección,
// uno distinto arranca ascendente.
func (s SortState) Toggle(field SortField) SortState {
	if field == s.Field {
		return SortState{Field: field, Desc: !s.Desc}
	}
	return SortState{Field: field}
}

// Filter aplica la política del listado: búsqueda vacía -> solo clientes activos;
// búsqueda con texto -> toda la población (activos y vencidos) cuyo nombre o DNI contiene el texto.
func Filter(list []View, query string) []View {
	q := textfold.Fold(query)
	out := make([]View, 0, len(list))
	for _, v := range list {
		if q == "" {
			if v.Active() {
				out = append(out, v)
			}
			continue
		}
		if strings.Contains(textfold.Fold(v.Name), q) || strings.Contains(textfold.Fold(v.DNI), q) {
			out = append(out, v)
		}
	}
	return out
}

// Sort ordena list en el lugar de forma estable según st.
func Sort(list []View, st SortState) {
	cmp := comparator(st.Field)
	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(list[i], list[j])
		if st.Desc {
			c = -c
		}
		return c < 0
	})
}

// Apply filtra y ordena; no modifica list.
func Apply(list []View, query string, st SortState) []View {
	out := Filter(list, query)
	Sort(out, st)
	return out
}

func comparator(field SortField) func(a, b View) int {
	// collate.Collator no es seguro para uso concurrente: uno por ordenamiento.
	col := collate.New(language.Spanish, collate.IgnoreCase)
	switch field {
	case SortByName:
		return func(a, b View) int { return col.CompareString(a.Name, b.Name) }
	case SortByDNI:
		return func(a, b View) int { return col.CompareString(a.DNI, b.DNI) }
	case SortByComments:
		return func(a, b View) int { return col.CompareString(a.Comments, b.Comments) }
	case SortByExpiresOn:
		return func(a, b View) int { return a.ExpiresOn.Compare(b.ExpiresOn) }
	case SortByStartTime:
		return func(a, b View) int { return strings.Compare(a.StartTime(), b.StartTime()) }
	case SortByDays:
		return func(a, b View) int {
			if c := compareInt(WeekdayCount(a.Days), WeekdayCount(b.Days)); c != 0 {
				return c
			}
			return strings.Compare(a.StartTime(), b.StartTime())
		}
	default:
		return func(a, b View) int {
			if c := compareInt(remainingKey(a), remainingKey(b)); c != 0 {
				return c
			}
			return strings.Compare(a.StartTime(), b.StartTime())
		}
	}
}

// remainingKey ubica las fechas desconocidas antes que cualquier valor conocido.
func remainingKey(v View) int {
	if !v.ExpiryKnown {
		return math.MinInt
	}
	return v.DaysRemaining
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
