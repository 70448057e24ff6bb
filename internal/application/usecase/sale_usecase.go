package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/ledger"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// MinNotesLength largo mínimo de las observaciones de un movimiento.
const MinNotesLength = 5

// AmountPlaces decimales con los que se guardan los montos (NUMERIC(14,2)).
const AmountPlaces = 2

// SaleUseCase casos de uso del libro de ventas.
type SaleUseCase struct {
	repo  repository.SaleRepository
	feed  ports.ChangeFeed
	zones *ZoneResolver
	log   *logger.Logger
	now   func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository, feed ports.ChangeFeed, zones *ZoneResolver, log *logger.Logger) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{repo: repo, feed: feed, zones: zones, log: log, now: time.Now}
}

// SetClock reemplaza el reloj.
func (uc *SaleUseCase) SetClock(now func() time.Time) { uc.now = now }

// Snapshot lee los movimientos del dueño con la fecha canonizada, del más reciente al más antiguo.
// Los registros con fecha irreconocible se descartan y quedan en el log.
func (uc *SaleUseCase) Snapshot(ctx context.Context, ownerID string) ([]entity.Sale, error) {
	records, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	sales, dropped := ledger.Normalize(records, uc.zones.Location(ctx, ownerID))
	for _, r := range dropped {
		uc.log.Warn().Str("owner_id", ownerID).Str("sale_id", r.ID).Interface("date", r.RawDate).
			Msg("movimiento con fecha inválida, se omite")
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date > sales[j].Date })
	return sales, nil
}

// Watch publica la lista de movimientos cada vez que cambia. Cancelar ctx libera la suscripción.
func (uc *SaleUseCase) Watch(ctx context.Context, ownerID string) (<-chan []entity.Sale, error) {
	return watch(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSales), func(ctx context.Context) ([]entity.Sale, error) {
		return uc.Snapshot(ctx, ownerID)
	}, uc.log)
}

// List devuelve los movimientos planos.
func (uc *SaleUseCase) List(ctx context.Context, ownerID string) ([]dto.SaleResponse, error) {
	sales, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out, nil
}

// Tree arma el libro completo del dueño.
func (uc *SaleUseCase) Tree(ctx context.Context, ownerID string) (ledger.Tree, error) {
	sales, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return ledger.Tree{}, err
	}
	return ledger.Build(sales), nil
}

// Ledger devuelve el libro agrupado y acotado por query.
func (uc *SaleUseCase) Ledger(ctx context.Context, ownerID, query string) (*dto.LedgerResponse, error) {
	sales, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return BuildLedgerResponse(sales, query), nil
}

// Add carga un movimiento. El modo decide el signo; un monto cero se rechaza antes de escribir.
func (uc *SaleUseCase) Add(ctx context.Context, ownerID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	if mode == "" {
		mode = entity.SaleModeIncome
	}
	if mode != entity.SaleModeIncome && mode != entity.SaleModeExpense {
		return nil, domain.Invalid("mode", "modo inválido, usar income o expense")
	}
	date, amount, notes, err := uc.validateSale(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}
	amount = amount.Abs()
	if mode == entity.SaleModeExpense {
		amount = amount.Neg()
	}
	now := uc.now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Date:      date,
		Amount:    amount,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSales), uc.log)
	out := ToSaleResponse(*sale)
	return &out, nil
}

// Update edita un movimiento conservando el signo guardado: el monto nuevo se toma en valor absoluto.
func (uc *SaleUseCase) Update(ctx context.Context, ownerID, id string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	existing, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener venta: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	date, amount, notes, err := uc.validateSale(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}
	amount = amount.Abs()
	if existing.IsExpense() {
		amount = amount.Neg()
	}
	existing.Date = date
	existing.Amount = amount
	existing.Notes = notes
	existing.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSales), uc.log)
	out := ToSaleResponse(*existing)
	return &out, nil
}

// Delete elimina un movimiento.
func (uc *SaleUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSales), uc.log)
	return nil
}

// validateSale devuelve la fecha normalizada y el monto redondeado a centavos, tal como se guarda.
func (uc *SaleUseCase) validateSale(ctx context.Context, ownerID string, in dto.SaleRequest) (date string, amount decimal.Decimal, notes string, err error) {
	amount = in.Amount.Round(AmountPlaces)
	if amount.IsZero() {
		return "", amount, "", domain.Invalid("amount", "el monto no puede ser cero")
	}
	date, ok := dates.Normalize(in.Date, uc.zones.Location(ctx, ownerID))
	if !ok {
		return "", amount, "", domain.Invalid("date", "fecha inválida, usar YYYY-MM-DD")
	}
	notes = strings.TrimSpace(in.Notes)
	if utf8.RuneCountInString(notes) < MinNotesLength {
		return "", amount, "", domain.Invalid("notes", fmt.Sprintf("las observaciones deben tener al menos %d caracteres", MinNotesLength))
	}
	return date, amount, notes, nil
}

// ToSaleResponse convierte un movimiento al formato de salida.
func ToSaleResponse(s entity.Sale) dto.SaleResponse {
	kind := entity.SaleModeIncome
	if s.IsExpense() {
		kind = entity.SaleModeExpense
	}
	return dto.SaleResponse{
		ID:          s.ID,
		Date:        s.Date,
		DateDisplay: dates.ParseString(s.Date, time.UTC).Display(),
		Amount:      s.Amount,
		Kind:        kind,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// BuildLedgerResponse agrupa sales, aplica la búsqueda y ordena para presentar:
// años y meses del más reciente al más antiguo, días en orden de calendario.
func BuildLedgerResponse(sales []entity.Sale, query string) *dto.LedgerResponse {
	tree := ledger.Narrow(ledger.Build(sales), query)
	resp := &dto.LedgerResponse{Query: query, Total: decimal.Zero, Years: make([]dto.LedgerYear, 0)}
	for _, y := range tree.Years() {
		year := dto.LedgerYear{Year: y.Year, Sum: y.Sum(), Months: make([]dto.LedgerMonth, 0)}
		for _, m := range y.Months() {
			tot := m.Totals()
			month := dto.LedgerMonth{
				Month:   int(m.Month),
				Name:    ledger.MonthName(m.Month),
				Sum:     m.Sum(),
				Income:  tot.Income,
				Expense: tot.Expense,
				Days:    make([]dto.LedgerDay, 0),
			}
			for _, d := range m.Days() {
				day := dto.LedgerDay{
					Key:     d.Key,
					Date:    d.Date.String(),
					Display: d.Date.Display(),
					Sum:     d.Sum(),
					Sales:   make([]dto.SaleResponse, 0, len(d.Sales)),
				}
				for _, s := range d.Sales {
					day.Sales = append(day.Sales, ToSaleResponse(s))
				}
				month.Days = append(month.Days, day)
			}
			year.Months = append(year.Months, month)
		}
		resp.Total = resp.Total.Add(year.Sum)
		resp.Years = append(resp.Years, year)
	}
	return resp
}

// ToLedgerTotals convierte los totales de un grupo al formato de salida.
func ToLedgerTotals(t ledger.Totals) dto.LedgerTotals {
	return dto.LedgerTotals{Income: t.Income, Expense: t.Expense, Net: t.Net}
}
