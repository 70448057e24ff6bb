package repository

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// SlotRepository define el puerto de persistencia para turnos con cupo.
type SlotRepository interface {
	Create(ctx context.Context, slot *entity.Slot) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Slot, error)
	// GetForUpdate lee el turno bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Slot, error)
	ListByDate(ctx context.Context, ownerID, date string) ([]entity.Slot, error)
	UpdateClients(ctx context.Context, slot *entity.Slot) error
	Delete(ctx context.Context, ownerID, id string) error
}
