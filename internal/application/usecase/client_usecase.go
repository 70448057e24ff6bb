package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/client"
	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// Direcciones de orden aceptadas en el listado.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ClientUseCase casos de uso de clientes: vista en vivo, listado, ABM y estadísticas.
type ClientUseCase struct {
	repo  repository.ClientRepository
	feed  ports.ChangeFeed
	zones *ZoneResolver
	log   *logger.Logger
	now   func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, feed ports.ChangeFeed, zones *ZoneResolver, log *logger.Logger) *ClientUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ClientUseCase{repo: repo, feed: feed, zones: zones, log: log, now: time.Now}
}

// SetClock reemplaza el reloj (tests y herramientas que calculan a una fecha dada).
func (uc *ClientUseCase) SetClock(now func() time.Time) { uc.now = now }

// Snapshot lee la colección del dueño y la proyecta con los días restantes de hoy.
func (uc *ClientUseCase) Snapshot(ctx context.Context, ownerID string) ([]client.View, error) {
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return client.ProjectAll(list, uc.now(), uc.zones.Location(ctx, ownerID)), nil
}

// Watch publica la colección proyectada cada vez que cambia. Cancelar ctx libera la suscripción.
func (uc *ClientUseCase) Watch(ctx context.Context, ownerID string) (<-chan []client.View, error) {
	return watch(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionClients), func(ctx context.Context) ([]client.View, error) {
		return uc.Snapshot(ctx, ownerID)
	}, uc.log)
}

// ParseListQuery valida campo y dirección de orden. Vacíos = orden por defecto.
func ParseListQuery(q dto.ClientListQuery) (client.SortState, error) {
	st := client.DefaultSort()
	if strings.TrimSpace(q.Sort) != "" {
		f, ok := client.ParseSortField(q.Sort)
		if !ok {
			return st, domain.Invalid("sort", fmt.Sprintf("campo de orden desconocido: %s", q.Sort))
		}
		st.Field = f
	}
	switch strings.ToLower(strings.TrimSpace(q.Dir)) {
	case "", SortAsc:
	case SortDesc:
		st.Desc = true
	default:
		return st, domain.Invalid("dir", "dirección de orden inválida, usar asc o desc")
	}
	return st, nil
}

// Render filtra y ordena una instantánea para presentar.
func (uc *ClientUseCase) Render(views []client.View, q dto.ClientListQuery, st client.SortState) *dto.ClientListResponse {
	list := client.Apply(views, q.Q, st)
	dir := SortAsc
	if st.Desc {
		dir = SortDesc
	}
	now := uc.now()
	items := make([]dto.ClientView, 0, len(list))
	for _, v := range list {
		items = append(items, ToClientView(v, now))
	}
	return &dto.ClientListResponse{Items: items, Total: len(items), Query: q.Q, Sort: string(st.Field), Dir: dir}
}

// List devuelve el listado filtrado y ordenado.
func (uc *ClientUseCase) List(ctx context.Context, ownerID string, q dto.ClientListQuery) (*dto.ClientListResponse, error) {
	st, err := ParseListQuery(q)
	if err != nil {
		return nil, err
	}
	views, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.Render(views, q, st), nil
}

// Get obtiene un cliente del dueño.
func (uc *ClientUseCase) Get(ctx context.Context, ownerID, id string) (*dto.ClientView, error) {
	c, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	v := ToClientView(client.Project(*c, now, uc.zones.Location(ctx, ownerID)), now)
	return &v, nil
}

// Create valida y da de alta un cliente. Los instantes de alta y modificación los asigna el servidor.
func (uc *ClientUseCase) Create(ctx context.Context, ownerID string, in dto.ClientRequest) (*dto.ClientView, error) {
	loc := uc.zones.Location(ctx, ownerID)
	c, err := buildClient(in, loc)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c.ID = uuid.New().String()
	c.OwnerID = ownerID
	c.CreatedAt = now
	c.UpdatedAt = &now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionClients), uc.log)
	v := ToClientView(client.Project(*c, now, loc), now)
	return &v, nil
}

// Update sobrescribe todos los campos del cliente y refresca el instante de modificación.
func (uc *ClientUseCase) Update(ctx context.Context, ownerID, id string, in dto.ClientRequest) (*dto.ClientView, error) {
	loc := uc.zones.Location(ctx, ownerID)
	existing, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	c, err := buildClient(in, loc)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c.ID = existing.ID
	c.OwnerID = ownerID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = &now
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionClients), uc.log)
	v := ToClientView(client.Project(*c, now, loc), now)
	return &v, nil
}

// Delete elimina el cliente definitivamente.
func (uc *ClientUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionClients), uc.log)
	return nil
}

// Stats devuelve los conteos del tablero de clientes.
func (uc *ClientUseCase) Stats(ctx context.Context, ownerID string) (*dto.ClientStatsResponse, error) {
	views, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	st := ToStatsResponse(client.Summarize(views))
	return &st, nil
}

// Expiring devuelve los activos que vencen dentro de los próximos within días.
func (uc *ClientUseCase) Expiring(ctx context.Context, ownerID string, within int) ([]dto.ClientView, error) {
	if within < 0 {
		return nil, domain.Invalid("within", "la cantidad de días no puede ser negativa")
	}
	views, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.ClientView, 0)
	for _, v := range client.ExpiringWithin(views, within) {
		out = append(out, ToClientView(v, now))
	}
	return out, nil
}

// buildClient valida la entrada y deriva los días y el horario. Nada se escribe si falla.
func buildClient(in dto.ClientRequest, loc *time.Location) (*entity.Client, error) {
	dni := strings.TrimSpace(in.DNI)
	if dni == "" {
		return nil, domain.Invalid("dni", "el DNI es obligatorio")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es obligatorio")
	}
	if strings.TrimSpace(in.ExpiresOn) == "" {
		return nil, domain.Invalid("expires_on", "la fecha de vencimiento es obligatoria")
	}
	expires, ok := dates.Normalize(in.ExpiresOn, loc)
	if !ok {
		return nil, domain.Invalid("expires_on", "fecha de vencimiento inválida, usar YYYY-MM-DD")
	}
	days, err := client.NormalizeDays(in.Days)
	if err != nil {
		return nil, err
	}
	schedule, err := client.BuildSchedule(days, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	var amount *decimal.Decimal
	if in.Amount != nil {
		a := in.Amount.Round(AmountPlaces)
		if a.IsNegative() {
			return nil, domain.Invalid("amount", "el monto no puede ser negativo")
		}
		amount = &a
	}
	return &entity.Client{
		DNI:         dni,
		Name:        name,
		ExpiresOn:   expires,
		Days:        days,
		Schedule:    schedule,
		Amount:      amount,
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		BackupPhone: strings.TrimSpace(in.BackupPhone),
		Comments:    strings.TrimSpace(in.Comments),
	}, nil
}

// ToClientView convierte la proyección al formato de salida.
func ToClientView(v client.View, now time.Time) dto.ClientView {
	out := dto.ClientView{
		ID:               v.ID,
		DNI:              v.DNI,
		Name:             v.Name,
		ExpiresOn:        v.ExpiresOn.String(),
		ExpiresOnDisplay: v.ExpiresOn.Display(),
		Status:           dto.ClientStatusUnknown,
		Days:             v.Days,
		Schedule:         v.Schedule,
		Amount:           v.Amount,
		Email:            v.Email,
		Phone:            v.Phone,
		BackupPhone:      v.BackupPhone,
		Comments:         v.Comments,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.ExpiryKnown {
		n := v.DaysRemaining
		out.DaysRemaining = &n
		out.Status = dto.ClientStatusExpired
		if v.Active() {
			out.Status = dto.ClientStatusActive
		}
	}
	if v.UpdatedAt != nil {
		if t, err := time.Parse(time.RFC3339, *v.UpdatedAt); err == nil {
			out.UpdatedAgo = dates.TimeAgo(t, now)
		}
	}
	return out
}

// ToStatsResponse convierte los conteos al formato de salida.
func ToStatsResponse(s client.Stats) dto.ClientStatsResponse {
	return dto.ClientStatsResponse{
		Total:           s.Total,
		Active:          s.Active,
		Expired:         s.Expired,
		RecentlyExpired: s.RecentlyExpired,
		FixedSchedule:   s.FixedSchedule,
		Flexible:        s.Flexible,
		UnknownExpiry:   s.UnknownExpiry,
	}
}
