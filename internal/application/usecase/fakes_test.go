package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
)

var errStorage = errors.New("storage caído")

// baires zona fija para los tests (UTC-3 sin horario de verano).
var baires = time.FixedZone("ART", -3*60*60)

// fixedNow 15/03/2024 10:00 hora local.
var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, baires)

func clock() time.Time { return fixedNow }

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

type memClients struct {
	mu      sync.Mutex
	items   map[string]entity.Client
	listErr error
	writes  int
}

func newMemClients(list ...entity.Client) *memClients {
	m := &memClients{items: make(map[string]entity.Client)}
	for _, c := range list {
		m.items[c.ID] = c
	}
	return m
}

func (m *memClients) Create(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.items {
		if e.OwnerID == c.OwnerID && e.DNI == c.DNI {
			return domain.ErrDuplicate
		}
	}
	m.writes++
	m.items[c.ID] = *c
	return nil
}

func (m *memClients) GetByID(_ context.Context, ownerID, id string) (*entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return &c, nil
}

func (m *memClients) ListByOwner(_ context.Context, ownerID string) ([]entity.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]entity.Client, 0, len(m.items))
	for _, c := range m.items {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memClients) Update(_ context.Context, c *entity.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[c.ID]
	if !ok || e.OwnerID != c.OwnerID {
		return domain.ErrNotFound
	}
	m.writes++
	m.items[c.ID] = *c
	return nil
}

func (m *memClients) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	m.writes++
	delete(m.items, id)
	return nil
}

func (m *memClients) setListErr(err error) {
	m.mu.Lock()
	m.listErr = err
	m.mu.Unlock()
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

type memSales struct {
	mu      sync.Mutex
	records []entity.SaleRecord
	writes  int
}

func (m *memSales) Create(_ context.Context, s *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.records = append(m.records, entity.SaleRecord{Sale: *s, RawDate: s.Date})
	return nil
}

func (m *memSales) GetByID(_ context.Context, ownerID, id string) (*entity.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id && r.OwnerID == ownerID {
			s := r.Sale
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memSales) ListByOwner(_ context.Context, ownerID string) ([]entity.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.SaleRecord, 0, len(m.records))
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memSales) Update(_ context.Context, s *entity.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == s.ID && r.OwnerID == s.OwnerID {
			m.writes++
			m.records[i] = entity.SaleRecord{Sale: *s, RawDate: s.Date}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memSales) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.ID == id && r.OwnerID == ownerID {
			m.writes++
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ──────────────────────────────────────────────────────────────────────────────
// Turnos
// ──────────────────────────────────────────────────────────────────────────────

type memSlots struct {
	mu    sync.Mutex
	items map[string]entity.Slot
}

func newMemSlots() *memSlots { return &memSlots{items: make(map[string]entity.Slot)} }

func (m *memSlots) Create(_ context.Context, s *entity.Slot) error {
	m.items[s.ID] = clone(*s)
	return nil
}

func (m *memSlots) GetByID(_ context.Context, ownerID, id string) (*entity.Slot, error) {
	s, ok := m.items[id]
	if !ok || s.OwnerID != ownerID {
		return nil, nil
	}
	s = clone(s)
	return &s, nil
}

func (m *memSlots) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Slot, error) {
	return m.GetByID(ctx, ownerID, id)
}

func (m *memSlots) ListByDate(_ context.Context, ownerID, date string) ([]entity.Slot, error) {
	var out []entity.Slot
	for _, s := range m.items {
		if s.OwnerID == ownerID && s.Date == date {
			out = append(out, clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (m *memSlots) UpdateClients(_ context.Context, s *entity.Slot) error {
	if _, ok := m.items[s.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[s.ID] = clone(*s)
	return nil
}

func (m *memSlots) Delete(_ context.Context, ownerID, id string) error {
	s, ok := m.items[id]
	if !ok || s.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func clone(s entity.Slot) entity.Slot {
	s.ClientIDs = append([]string(nil), s.ClientIDs...)
	return s
}

// lockingTx serializa las transacciones como lo haría el bloqueo de fila.
type lockingTx struct{ slots *memSlots }

func (t lockingTx) RunSlots(_ context.Context, fn func(slots repository.SlotRepository) error) error {
	t.slots.mu.Lock()
	defer t.slots.mu.Unlock()
	return fn(t.slots)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas y feed
// ──────────────────────────────────────────────────────────────────────────────

type memOwners struct {
	items map[string]entity.Owner
	err   error
	reads int
}

func (m *memOwners) Create(_ context.Context, o *entity.Owner) error {
	m.items[o.ID] = *o
	return nil
}

func (m *memOwners) GetByID(_ context.Context, id string) (*entity.Owner, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memOwners) GetByEmail(_ context.Context, email string) (*entity.Owner, error) {
	for _, o := range m.items {
		if o.Email == email {
			return &o, nil
		}
	}
	return nil, nil
}

func (m *memOwners) List(context.Context) ([]entity.Owner, error) {
	out := make([]entity.Owner, 0, len(m.items))
	for _, o := range m.items {
		out = append(out, o)
	}
	return out, nil
}

// brokenFeed acepta suscripciones pero falla al publicar.
type brokenFeed struct{}

func (brokenFeed) Publish(context.Context, string) error { return errors.New("redis caído") }

func (brokenFeed) Subscribe(ctx context.Context, _ string) (<-chan struct{}, error) {
	ch := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}
