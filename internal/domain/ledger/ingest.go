package ledger

import (
	"time"

	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// Normalize canoniza la fecha de cada registro a YYYY-MM-DD. Los registros cuya fecha no
// se puede interpretar vuelven en dropped para que el llamador los registre; nunca frenan al resto.
func Normalize(records []entity.SaleRecord, loc *time.Location) (kept []entity.Sale, dropped []entity.SaleRecord) {
	kept = make([]entity.Sale, 0, len(records))
	for _, r := range records {
		raw := r.RawDate
		if raw == nil {
			raw = r.Date
		}
		d := dates.Canonical(raw, loc)
		if d.IsZero() {
			dropped = append(dropped, r)
			continue
		}
		s := r.Sale
		s.Date = d.String()
		kept = append(kept, s)
	}
	return kept, dropped
}
