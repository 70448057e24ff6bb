package repository

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia del libro de ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Sale, error)
	// ListByOwner devuelve los movimientos del dueño ordenados por fecha descendente.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.SaleRecord, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, ownerID, id string) error
}
