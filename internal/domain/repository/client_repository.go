package repository

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para los clientes de un dueño.
// Todas las operaciones se acotan por ownerID.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Client, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Client, error)
	// Update sobrescribe todos los campos mutables; ErrNotFound si no existe.
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, ownerID, id string) error
}
