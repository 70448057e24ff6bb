package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/dates"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// MaxSlotCapacity cupo máximo aceptado para un turno.
const MaxSlotCapacity = 500

// SlotUseCase casos de uso de turnos con cupo limitado.
type SlotUseCase struct {
	repo    repository.SlotRepository
	clients repository.ClientRepository
	tx      SlotTxRunner
	feed    ports.ChangeFeed
	zones   *ZoneResolver
	log     *logger.Logger
	now     func() time.Time
}

// NewSlotUseCase construye el caso de uso.
func NewSlotUseCase(
	repo repository.SlotRepository,
	clients repository.ClientRepository,
	tx SlotTxRunner,
	feed ports.ChangeFeed,
	zones *ZoneResolver,
	log *logger.Logger,
) *SlotUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SlotUseCase{repo: repo, clients: clients, tx: tx, feed: feed, zones: zones, log: log, now: time.Now}
}

// Create da de alta un turno.
func (uc *SlotUseCase) Create(ctx context.Context, ownerID string, in dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	date, ok := dates.Normalize(in.Date, uc.zones.Location(ctx, ownerID))
	if !ok {
		return nil, domain.Invalid("date", "fecha inválida, usar YYYY-MM-DD")
	}
	from, err := dates.ParseClock(in.StartTime)
	if err != nil {
		return nil, domain.Invalid("start_time", "hora de inicio inválida, usar HH:MM")
	}
	to, err := dates.ParseClock(in.EndTime)
	if err != nil {
		return nil, domain.Invalid("end_time", "hora de fin inválida, usar HH:MM")
	}
	if to <= from {
		return nil, domain.Invalid("end_time", "la hora de fin debe ser posterior a la de inicio")
	}
	if in.Capacity <= 0 || in.Capacity > MaxSlotCapacity {
		return nil, domain.Invalid("capacity", fmt.Sprintf("el cupo debe estar entre 1 y %d", MaxSlotCapacity))
	}
	now := uc.now()
	slot := &entity.Slot{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Date:      date,
		StartTime: from.String(),
		EndTime:   to.String(),
		Capacity:  in.Capacity,
		ClientIDs: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSlots), uc.log)
	return toSlotResponse(slot), nil
}

// ListByDate lista los turnos de un día ordenados por hora de inicio.
func (uc *SlotUseCase) ListByDate(ctx context.Context, ownerID, date string) ([]dto.SlotResponse, error) {
	day, ok := dates.Normalize(date, uc.zones.Location(ctx, ownerID))
	if !ok {
		return nil, domain.Invalid("date", "fecha inválida, usar YYYY-MM-DD")
	}
	list, err := uc.repo.ListByDate(ctx, ownerID, day)
	if err != nil {
		return nil, fmt.Errorf("listar turnos: %w", err)
	}
	out := make([]dto.SlotResponse, 0, len(list))
	for i := range list {
		out = append(out, *toSlotResponse(&list[i]))
	}
	return out, nil
}

// Assign ocupa un lugar del turno para el cliente. La lectura, el control de cupo y la
// escritura ocurren con la fila bloqueada: dos asignaciones concurrentes no se pisan.
func (uc *SlotUseCase) Assign(ctx context.Context, ownerID, slotID, clientID string) (*dto.SlotResponse, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, domain.Invalid("client_id", "el cliente es obligatorio")
	}
	c, err := uc.clients.GetByID(ctx, ownerID, clientID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	var result *entity.Slot
	err = uc.tx.RunSlots(ctx, func(slots repository.SlotRepository) error {
		slot, err := slots.GetForUpdate(ctx, ownerID, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return domain.ErrNotFound
		}
		if slot.Has(clientID) {
			return domain.ErrConflict
		}
		if slot.Free() == 0 {
			return domain.ErrSlotFull
		}
		slot.ClientIDs = append(slot.ClientIDs, clientID)
		slot.UpdatedAt = uc.now()
		if err := slots.UpdateClients(ctx, slot); err != nil {
			return err
		}
		result = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSlots), uc.log)
	return toSlotResponse(result), nil
}

// Release libera el lugar del cliente en el turno.
func (uc *SlotUseCase) Release(ctx context.Context, ownerID, slotID, clientID string) (*dto.SlotResponse, error) {
	var result *entity.Slot
	err := uc.tx.RunSlots(ctx, func(slots repository.SlotRepository) error {
		slot, err := slots.GetForUpdate(ctx, ownerID, slotID)
		if err != nil {
			return err
		}
		if slot == nil || !slot.Has(clientID) {
			return domain.ErrNotFound
		}
		kept := make([]string, 0, len(slot.ClientIDs))
		for _, id := range slot.ClientIDs {
			if id != clientID {
				kept = append(kept, id)
			}
		}
		slot.ClientIDs = kept
		slot.UpdatedAt = uc.now()
		if err := slots.UpdateClients(ctx, slot); err != nil {
			return err
		}
		result = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSlots), uc.log)
	return toSlotResponse(result), nil
}

// Delete elimina un turno.
func (uc *SlotUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	notify(ctx, uc.feed, ports.Topic(ownerID, ports.CollectionSlots), uc.log)
	return nil
}

func toSlotResponse(s *entity.Slot) *dto.SlotResponse {
	ids := s.ClientIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.SlotResponse{
		ID:        s.ID,
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Capacity:  s.Capacity,
		Free:      s.Free(),
		ClientIDs: ids,
	}
}
