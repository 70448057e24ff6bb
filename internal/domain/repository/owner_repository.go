package repository

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// OwnerRepository define el puerto de persistencia para las cuentas de dueño.
type OwnerRepository interface {
	Create(ctx context.Context, owner *entity.Owner) error
	GetByID(ctx context.Context, id string) (*entity.Owner, error)
	GetByEmail(ctx context.Context, email string) (*entity.Owner, error)
	List(ctx context.Context) ([]entity.Owner, error)
}
