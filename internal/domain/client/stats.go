package client

import "sort"

// RecentlyExpiredWindow días hacia atrás que cuentan como "vencido recientemente".
const RecentlyExpiredWindow = 31

// Stats conteos agregados sobre la población proyectada.
type Stats struct {
	Total           int
	Active          int
	Expired         int
	RecentlyExpired int
	FixedSchedule   int
	Flexible        int
	UnknownExpiry   int
}

// Summarize calcula los conteos del tablero de clientes.
func Summarize(list []View) Stats {
	st := Stats{Total: len(list)}
	for _, v := range list {
		switch {
		case !v.ExpiryKnown:
			st.UnknownExpiry++
		case v.Active():
			st.Active++
			if v.Flexible() {
				st.Flexible++
			} else {
				st.FixedSchedule++
			}
		default:
			st.Expired++
			if v.DaysRemaining >= -RecentlyExpiredWindow {
				st.RecentlyExpired++
			}
		}
	}
	return st
}

// ExpiringWithin devuelve los activos que vencen en los próximos days días, el más urgente primero.
func ExpiringWithin(list []View, days int) []View {
	out := make([]View, 0)
	for _, v := range list {
		if v.Active() && v.DaysRemaining <= days {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysRemaining < out[j].DaysRemaining })
	return out
}
