package http_test

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/domain/client"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// Fakes de los servicios: cada método delega en un campo func; los no configurados devuelven ceros.

type fakeAuth struct {
	register func(dto.RegisterRequest) (*dto.OwnerResponse, error)
	login    func(dto.LoginRequest) (*dto.LoginResponse, error)
	verify   func(string, dto.VerifyRequest) (*dto.VerifyResponse, error)
	active   bool
}

func (f *fakeAuth) Register(_ context.Context, in dto.RegisterRequest) (*dto.OwnerResponse, error) {
	return f.register(in)
}

func (f *fakeAuth) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	return f.login(in)
}

func (f *fakeAuth) Verify(_ context.Context, ownerID string, in dto.VerifyRequest) (*dto.VerifyResponse, error) {
	return f.verify(ownerID, in)
}

func (f *fakeAuth) Me(_ context.Context, ownerID string) (*dto.OwnerResponse, error) {
	return &dto.OwnerResponse{ID: ownerID}, nil
}

func (f *fakeAuth) IsActive(context.Context, string) (bool, error) { return f.active, nil }

type fakeClients struct {
	lastOwner string
	lastQuery dto.ClientListQuery
	snapshots [][]client.View
	watchErr  error
	createErr error
	getErr    error
	deleted   []string
	within    int
}

func (f *fakeClients) List(_ context.Context, ownerID string, q dto.ClientListQuery) (*dto.ClientListResponse, error) {
	f.lastOwner, f.lastQuery = ownerID, q
	return &dto.ClientListResponse{Items: []dto.ClientView{}, Query: q.Q, Sort: q.Sort, Dir: q.Dir}, nil
}

// Watch entrega las instantáneas configuradas y cierra el canal.
func (f *fakeClients) Watch(_ context.Context, ownerID string) (<-chan []client.View, error) {
	f.lastOwner = ownerID
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	ch := make(chan []client.View, len(f.snapshots))
	for _, s := range f.snapshots {
		ch <- s
	}
	close(ch)
	return ch, nil
}

func (f *fakeClients) Render(views []client.View, q dto.ClientListQuery, st client.SortState) *dto.ClientListResponse {
	items := make([]dto.ClientView, 0, len(views))
	for _, v := range views {
		items = append(items, dto.ClientView{ID: v.ID, Name: v.Name})
	}
	return &dto.ClientListResponse{Items: items, Total: len(items), Query: q.Q, Sort: string(st.Field)}
}

func (f *fakeClients) Get(_ context.Context, _ string, id string) (*dto.ClientView, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dto.ClientView{ID: id}, nil
}

func (f *fakeClients) Create(_ context.Context, ownerID string, in dto.ClientRequest) (*dto.ClientView, error) {
	f.lastOwner = ownerID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.ClientView{ID: "c-1", DNI: in.DNI, Name: in.Name}, nil
}

func (f *fakeClients) Update(_ context.Context, _ string, id string, in dto.ClientRequest) (*dto.ClientView, error) {
	return &dto.ClientView{ID: id, Name: in.Name}, nil
}

func (f *fakeClients) Delete(_ context.Context, _ string, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClients) Stats(context.Context, string) (*dto.ClientStatsResponse, error) {
	return &dto.ClientStatsResponse{Total: 3, Active: 2}, nil
}

func (f *fakeClients) Expiring(_ context.Context, _ string, within int) ([]dto.ClientView, error) {
	f.within = within
	return []dto.ClientView{}, nil
}

type fakeSales struct {
	snapshots [][]entity.Sale
	addErr    error
	lastQuery string
}

func (f *fakeSales) List(context.Context, string) ([]dto.SaleResponse, error) {
	return []dto.SaleResponse{}, nil
}

func (f *fakeSales) Ledger(_ context.Context, _ string, query string) (*dto.LedgerResponse, error) {
	f.lastQuery = query
	return &dto.LedgerResponse{Query: query, Years: []dto.LedgerYear{}}, nil
}

func (f *fakeSales) Watch(context.Context, string) (<-chan []entity.Sale, error) {
	ch := make(chan []entity.Sale, len(f.snapshots))
	for _, s := range f.snapshots {
		ch <- s
	}
	close(ch)
	return ch, nil
}

func (f *fakeSales) Add(_ context.Context, _ string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &dto.SaleResponse{ID: "s-1", Amount: in.Amount, Notes: in.Notes}, nil
}

func (f *fakeSales) Update(_ context.Context, _ string, id string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	return &dto.SaleResponse{ID: id, Amount: in.Amount}, nil
}

func (f *fakeSales) Delete(context.Context, string, string) error { return nil }

type fakeReports struct {
	lastQuery dto.ReportQuery
	err       error
}

func (f *fakeReports) PDF(_ context.Context, _ string, q dto.ReportQuery) ([]byte, string, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-1.4"), "libro-2024-03.pdf", nil
}

func (f *fakeReports) CSV(_ context.Context, _ string, q dto.ReportQuery) ([]byte, string, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("fecha;dia;tipo;monto;observaciones\n"), "libro-2024-03.csv", nil
}

type fakeSlots struct {
	assignErr error
	lastDate  string
}

func (f *fakeSlots) Create(_ context.Context, _ string, in dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	return &dto.SlotResponse{ID: "t-1", Date: in.Date, Capacity: in.Capacity, Free: in.Capacity}, nil
}

func (f *fakeSlots) ListByDate(_ context.Context, _ string, date string) ([]dto.SlotResponse, error) {
	f.lastDate = date
	return []dto.SlotResponse{}, nil
}

func (f *fakeSlots) Assign(_ context.Context, _ string, slotID, clientID string) (*dto.SlotResponse, error) {
	if f.assignErr != nil {
		return nil, f.assignErr
	}
	return &dto.SlotResponse{ID: slotID, ClientIDs: []string{clientID}}, nil
}

func (f *fakeSlots) Release(_ context.Context, _ string, slotID, _ string) (*dto.SlotResponse, error) {
	return &dto.SlotResponse{ID: slotID, ClientIDs: []string{}}, nil
}

func (f *fakeSlots) Delete(context.Context, string, string) error { return nil }

type fakeDashboard struct{}

func (fakeDashboard) GetSummary(context.Context, string) (*dto.DashboardSummaryDTO, error) {
	return &dto.DashboardSummaryDTO{DateLabel: "Marzo 2024"}, nil
}
