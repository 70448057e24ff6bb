package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/feed"
)

func newSlotUC(clients *memClients, slots *memSlots) *usecase.SlotUseCase {
	return usecase.NewSlotUseCase(slots, clients, lockingTx{slots: slots}, feed.NewMemory(), usecase.NewZoneResolver(nil, baires, nil), nil)
}

func clientsN(n int) *memClients {
	repo := newMemClients()
	for i := 1; i <= n; i++ {
		c := seedClient(fmt.Sprintf("c%d", i), fmt.Sprintf("%d", i), fmt.Sprintf("Cliente %d", i), "2024-04-01")
		repo.items[c.ID] = c
	}
	return repo
}

func TestSlotCreate_Validaciones(t *testing.T) {
	uc := newSlotUC(clientsN(0), newMemSlots())
	cases := []struct {
		in    dto.CreateSlotRequest
		field string
	}{
		{dto.CreateSlotRequest{Date: "x", StartTime: "08:00", EndTime: "09:00", Capacity: 5}, "date"},
		{dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "8", EndTime: "09:00", Capacity: 5}, "start_time"},
		{dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "08:00", EndTime: "24:00", Capacity: 5}, "end_time"},
		{dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "09:00", EndTime: "09:00", Capacity: 5}, "end_time"},
		{dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "08:00", EndTime: "09:00", Capacity: 0}, "capacity"},
		{dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "08:00", EndTime: "09:00", Capacity: usecase.MaxSlotCapacity + 1}, "capacity"},
	}
	for _, tc := range cases {
		_, err := uc.Create(context.Background(), ownerA, tc.in)
		field, ok := domain.FieldOf(err)
		require.True(t, ok, "%+v", tc.in)
		assert.Equal(t, tc.field, field)
	}
}

func TestSlotAssign_CupoDuplicadoYDesconocido(t *testing.T) {
	slots := newMemSlots()
	uc := newSlotUC(clientsN(3), slots)
	ctx := context.Background()

	slot, err := uc.Create(ctx, ownerA, dto.CreateSlotRequest{Date: "15/03/2024", StartTime: "18:00", EndTime: "19:00", Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", slot.Date)
	assert.Equal(t, 2, slot.Free)

	out, err := uc.Assign(ctx, ownerA, slot.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Free)

	_, err = uc.Assign(ctx, ownerA, slot.ID, "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Assign(ctx, ownerA, slot.ID, "c2")
	require.NoError(t, err)

	_, err = uc.Assign(ctx, ownerA, slot.ID, "c3")
	assert.ErrorIs(t, err, domain.ErrSlotFull)

	_, err = uc.Assign(ctx, ownerA, slot.ID, "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Assign(ctx, ownerA, "turno-inexistente", "c3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Assign(ctx, ownerA, slot.ID, " ")
	field, _ := domain.FieldOf(err)
	assert.Equal(t, "client_id", field)
}

func TestSlotAssign_ConcurrenteNoSobrevende(t *testing.T) {
	const capacity, contenders = 3, 12
	slots := newMemSlots()
	uc := newSlotUC(clientsN(contenders), slots)
	ctx := context.Background()
	slot, err := uc.Create(ctx, ownerA, dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "18:00", EndTime: "19:00", Capacity: capacity})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, full := 0, 0
	for i := 1; i <= contenders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := uc.Assign(ctx, ownerA, slot.ID, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrSlotFull):
				full++
			}
		}(fmt.Sprintf("c%d", i))
	}
	wg.Wait()

	assert.Equal(t, capacity, ok)
	assert.Equal(t, contenders-capacity, full)
	assert.Len(t, slots.items[slot.ID].ClientIDs, capacity)
}

func TestSlotRelease(t *testing.T) {
	slots := newMemSlots()
	uc := newSlotUC(clientsN(2), slots)
	ctx := context.Background()
	slot, err := uc.Create(ctx, ownerA, dto.CreateSlotRequest{Date: "2024-03-15", StartTime: "18:00", EndTime: "19:00", Capacity: 1})
	require.NoError(t, err)
	_, err = uc.Assign(ctx, ownerA, slot.ID, "c1")
	require.NoError(t, err)

	_, err = uc.Release(ctx, ownerA, slot.ID, "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "liberar a quien no está asignado")

	out, err := uc.Release(ctx, ownerA, slot.ID, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Free)
	assert.Empty(t, out.ClientIDs)

	_, err = uc.Assign(ctx, ownerA, slot.ID, "c2")
	assert.NoError(t, err, "el lugar liberado vuelve a estar disponible")
}

func TestSlotListByDate(t *testing.T) {
	slots := newMemSlots()
	slots.items["late"] = entity.Slot{ID: "late", OwnerID: ownerA, Date: "2024-03-15", StartTime: "19:00", EndTime: "20:00", Capacity: 1}
	slots.items["early"] = entity.Slot{ID: "early", OwnerID: ownerA, Date: "2024-03-15", StartTime: "08:00", EndTime: "09:00", Capacity: 1}
	slots.items["other"] = entity.Slot{ID: "other", OwnerID: ownerA, Date: "2024-03-16", StartTime: "08:00", EndTime: "09:00", Capacity: 1}
	uc := newSlotUC(clientsN(0), slots)

	out, err := uc.ListByDate(context.Background(), ownerA, "15/03/2024")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "early", out[0].ID)
	assert.Equal(t, "late", out[1].ID)

	_, err = uc.ListByDate(context.Background(), ownerA, "pronto")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
