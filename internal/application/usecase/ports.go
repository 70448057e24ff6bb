package usecase

import (
	"context"

	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
)

// SlotTxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de turnos atado a esa tx. Garantiza que la asignación de lugares no pierda actualizaciones.
type SlotTxRunner interface {
	RunSlots(ctx context.Context, fn func(slots repository.SlotRepository) error) error
}
