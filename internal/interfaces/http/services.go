package http

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/domain/client"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// Contratos que consumen los handlers. Los implementan los casos de uso de
// internal/application; los tests los reemplazan por fakes.

// AuthService registro, login y reconfirmación.
type AuthService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.OwnerResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Verify(ctx context.Context, ownerID string, in dto.VerifyRequest) (*dto.VerifyResponse, error)
	Me(ctx context.Context, ownerID string) (*dto.OwnerResponse, error)
	IsActive(ctx context.Context, ownerID string) (bool, error)
}

// ClientService cartera de clientes.
type ClientService interface {
	List(ctx context.Context, ownerID string, q dto.ClientListQuery) (*dto.ClientListResponse, error)
	Watch(ctx context.Context, ownerID string) (<-chan []client.View, error)
	Render(views []client.View, q dto.ClientListQuery, st client.SortState) *dto.ClientListResponse
	Get(ctx context.Context, ownerID, id string) (*dto.ClientView, error)
	Create(ctx context.Context, ownerID string, in dto.ClientRequest) (*dto.ClientView, error)
	Update(ctx context.Context, ownerID, id string, in dto.ClientRequest) (*dto.ClientView, error)
	Delete(ctx context.Context, ownerID, id string) error
	Stats(ctx context.Context, ownerID string) (*dto.ClientStatsResponse, error)
	Expiring(ctx context.Context, ownerID string, within int) ([]dto.ClientView, error)
}

// SaleService libro de ventas.
type SaleService interface {
	List(ctx context.Context, ownerID string) ([]dto.SaleResponse, error)
	Ledger(ctx context.Context, ownerID, query string) (*dto.LedgerResponse, error)
	Watch(ctx context.Context, ownerID string) (<-chan []entity.Sale, error)
	Add(ctx context.Context, ownerID string, in dto.SaleRequest) (*dto.SaleResponse, error)
	Update(ctx context.Context, ownerID, id string, in dto.SaleRequest) (*dto.SaleResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ReportService exportaciones del libro.
type ReportService interface {
	PDF(ctx context.Context, ownerID string, q dto.ReportQuery) ([]byte, string, error)
	CSV(ctx context.Context, ownerID string, q dto.ReportQuery) ([]byte, string, error)
}

// SlotService turnos con cupo.
type SlotService interface {
	Create(ctx context.Context, ownerID string, in dto.CreateSlotRequest) (*dto.SlotResponse, error)
	ListByDate(ctx context.Context, ownerID, date string) ([]dto.SlotResponse, error)
	Assign(ctx context.Context, ownerID, slotID, clientID string) (*dto.SlotResponse, error)
	Release(ctx context.Context, ownerID, slotID, clientID string) (*dto.SlotResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DashboardService resumen de inicio.
type DashboardService interface {
	GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error)
}
