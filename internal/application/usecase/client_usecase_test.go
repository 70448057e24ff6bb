package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/client"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/feed"
)

const ownerA = "owner-a"

func seedClient(id, dni, name, expires string, days ...string) entity.Client {
	if len(days) == 0 {
		days = []string{entity.DayFree}
	}
	schedule := entity.ScheduleFree
	if days[0] != entity.DayFree {
		schedule = "08:00 - 09:00"
	}
	return entity.Client{ID: id, OwnerID: ownerA, DNI: dni, Name: name, ExpiresOn: expires, Days: days, Schedule: schedule}
}

func newClientUC(repo *memClients, f ports.ChangeFeed) *usecase.ClientUseCase {
	uc := usecase.NewClientUseCase(repo, f, usecase.NewZoneResolver(nil, baires, nil), nil)
	uc.SetClock(clock)
	return uc
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "el canal no debe cerrarse")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó la instantánea")
	}
	var zero T
	return zero
}

func assertSilent[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("no se esperaba instantánea, llegó %v", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClientWatch_PrimeraInstantaneaYRecarga(t *testing.T) {
	repo := newMemClients(seedClient("1", "100", "Ana", "2024-03-20"))
	mem := feed.NewMemory()
	uc := newClientUC(repo, mem)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := uc.Watch(ctx, ownerA)
	require.NoError(t, err)

	first := receive(t, ch)
	require.Len(t, first, 1)
	assert.Equal(t, 5, first[0].DaysRemaining)

	_, err = uc.Create(ctx, ownerA, dto.ClientRequest{DNI: "200", Name: "Beto", ExpiresOn: "2024-03-10", Days: []string{"Libre"}})
	require.NoError(t, err)

	second := receive(t, ch)
	assert.Len(t, second, 2)
}

func TestClientWatch_RecargaFallidaMantieneInstantanea(t *testing.T) {
	repo := newMemClients(seedClient("1", "100", "Ana", "2024-03-20"))
	mem := feed.NewMemory()
	uc := newClientUC(repo, mem)
	topic := ports.Topic(ownerA, ports.CollectionClients)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := uc.Watch(ctx, ownerA)
	require.NoError(t, err)
	receive(t, ch)

	repo.setListErr(errStorage)
	require.NoError(t, mem.Publish(ctx, topic))
	assertSilent(t, ch)

	repo.setListErr(nil)
	require.NoError(t, mem.Publish(ctx, topic))
	snap := receive(t, ch)
	assert.Len(t, snap, 1, "la suscripción sigue viva después del fallo")
}

func TestClientWatch_CancelarCierraYLibera(t *testing.T) {
	mem := feed.NewMemory()
	uc := newClientUC(newMemClients(), mem)
	topic := ports.Topic(ownerA, ports.CollectionClients)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := uc.Watch(ctx, ownerA)
	require.NoError(t, err)
	receive(t, ch)
	assert.Equal(t, 1, mem.Subscribers(topic))

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "el canal se cierra al cancelar")
	assert.Eventually(t, func() bool { return mem.Subscribers(topic) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestClientWatch_PrimeraCargaFallidaDevuelveError(t *testing.T) {
	repo := newMemClients()
	repo.setListErr(errStorage)
	mem := feed.NewMemory()
	uc := newClientUC(repo, mem)

	ch, err := uc.Watch(context.Background(), ownerA)
	assert.ErrorIs(t, err, errStorage)
	assert.Nil(t, ch)
	assert.Eventually(t, func() bool {
		return mem.Subscribers(ports.Topic(ownerA, ports.CollectionClients)) == 0
	}, 2*time.Second, 10*time.Millisecond, "no queda suscripción abierta")
}

func TestClientCreate_ValidacionSinEscritura(t *testing.T) {
	cases := []struct {
		name  string
		in    dto.ClientRequest
		field string
	}{
		{"sin dni", dto.ClientRequest{Name: "Ana", ExpiresOn: "2024-04-01", Days: []string{"Libre"}}, "dni"},
		{"sin nombre", dto.ClientRequest{DNI: "1", ExpiresOn: "2024-04-01", Days: []string{"Libre"}}, "name"},
		{"sin vencimiento", dto.ClientRequest{DNI: "1", Name: "Ana", Days: []string{"Libre"}}, "expires_on"},
		{"vencimiento inválido", dto.ClientRequest{DNI: "1", Name: "Ana", ExpiresOn: "mañana", Days: []string{"Libre"}}, "expires_on"},
		{"sin días", dto.ClientRequest{DNI: "1", Name: "Ana", ExpiresOn: "2024-04-01"}, "days"},
		{"libre con días", dto.ClientRequest{DNI: "1", Name: "Ana", ExpiresOn: "2024-04-01", Days: []string{"Libre", "L"}}, "days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemClients()
			uc := newClientUC(repo, feed.NewMemory())
			_, err := uc.Create(context.Background(), ownerA, tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			field, ok := domain.FieldOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, field)
			assert.Zero(t, repo.writes)
		})
	}
}

func TestClientCreate_HorarioYVista(t *testing.T) {
	repo := newMemClients()
	uc := newClientUC(repo, feed.NewMemory())
	amount := decimal.NewFromInt(15000)

	out, err := uc.Create(context.Background(), ownerA, dto.ClientRequest{
		DNI: " 30111222 ", Name: "Martín", ExpiresOn: "14/03/2024",
		Days: []string{"v", "L", "X"}, StartTime: "08:00", EndTime: "09:30", Amount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, "30111222", out.DNI)
	assert.Equal(t, []string{"L", "X", "V"}, out.Days)
	assert.Equal(t, "08:00 - 09:30", out.Schedule)
	assert.Equal(t, "2024-03-14", out.ExpiresOn)
	require.NotNil(t, out.DaysRemaining)
	assert.Equal(t, -1, *out.DaysRemaining)
	assert.Equal(t, dto.ClientStatusExpired, out.Status)
	assert.NotNil(t, out.UpdatedAt)
}

func TestClientCreate_MontoEnCentavos(t *testing.T) {
	repo := newMemClients()
	uc := newClientUC(repo, feed.NewMemory())
	amount := decimal.RequireFromString("15000.505")

	out, err := uc.Create(context.Background(), ownerA, dto.ClientRequest{
		DNI: "30111999", Name: "Lucía", ExpiresOn: "2024-04-01", Days: []string{"Libre"}, Amount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, "15000.51", out.Amount.String())
	stored := repo.items[out.ID]
	require.NotNil(t, stored.Amount)
	assert.Equal(t, "15000.51", stored.Amount.String())

	negative := decimal.RequireFromString("-0.5")
	_, err = uc.Create(context.Background(), ownerA, dto.ClientRequest{
		DNI: "30111998", Name: "Pablo", ExpiresOn: "2024-04-01", Days: []string{"Libre"}, Amount: &negative,
	})
	field, _ := domain.FieldOf(err)
	assert.Equal(t, "amount", field)
}

func TestClientCreate_DNIDuplicado(t *testing.T) {
	repo := newMemClients(seedClient("1", "100", "Ana", "2024-03-20"))
	uc := newClientUC(repo, feed.NewMemory())
	_, err := uc.Create(context.Background(), ownerA, dto.ClientRequest{DNI: "100", Name: "Otra", ExpiresOn: "2024-04-01", Days: []string{"Libre"}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestClientUpdate_NoEncontrado(t *testing.T) {
	uc := newClientUC(newMemClients(), feed.NewMemory())
	_, err := uc.Update(context.Background(), ownerA, "nope", dto.ClientRequest{DNI: "1", Name: "Ana", ExpiresOn: "2024-04-01", Days: []string{"Libre"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.Delete(context.Background(), ownerA, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUpdate_ConservaAlta(t *testing.T) {
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	c := seedClient("1", "100", "Ana", "2024-03-20")
	c.CreatedAt = created
	repo := newMemClients(c)
	uc := newClientUC(repo, feed.NewMemory())

	out, err := uc.Update(context.Background(), ownerA, "1", dto.ClientRequest{DNI: "100", Name: "Ana María", ExpiresOn: "2024-05-01", Days: []string{"Libre"}})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, created, repo.items["1"].CreatedAt)
	require.NotNil(t, repo.items["1"].UpdatedAt)
	assert.True(t, repo.items["1"].UpdatedAt.Equal(fixedNow))
}

func TestClientWrite_FalloDelAvisoNoFallaLaEscritura(t *testing.T) {
	repo := newMemClients()
	uc := newClientUC(repo, brokenFeed{})
	_, err := uc.Create(context.Background(), ownerA, dto.ClientRequest{DNI: "1", Name: "Ana", ExpiresOn: "2024-04-01", Days: []string{"Libre"}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.writes)
}

func TestClientList_FiltroYOrden(t *testing.T) {
	repo := newMemClients(
		seedClient("1", "100", "Ana", "2024-03-25"),
		seedClient("2", "200", "Beto", "2024-03-17"),
		seedClient("3", "300", "Ángela", "2024-03-01"),
		seedClient("4", "400", "Sin fecha", ""),
	)
	uc := newClientUC(repo, feed.NewMemory())

	out, err := uc.List(context.Background(), ownerA, dto.ClientListQuery{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2, "consulta vacía = solo activos")
	assert.Equal(t, "Beto", out.Items[0].Name)
	assert.Equal(t, "Ana", out.Items[1].Name)
	assert.Equal(t, string(client.SortByDaysRemaining), out.Sort)
	assert.Equal(t, usecase.SortAsc, out.Dir)

	out, err = uc.List(context.Background(), ownerA, dto.ClientListQuery{Q: "an", Sort: "name", Dir: "desc"})
	require.NoError(t, err)
	var names []string
	for _, it := range out.Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Ángela", "Ana"}, names, "la búsqueda incluye vencidos y no distingue tildes")

	_, err = uc.List(context.Background(), ownerA, dto.ClientListQuery{Sort: "edad"})
	field, _ := domain.FieldOf(err)
	assert.Equal(t, "sort", field)
}

func TestClientStatsYExpiring(t *testing.T) {
	repo := newMemClients(
		seedClient("1", "100", "Ana", "2024-03-25", "L", "X"),
		seedClient("2", "200", "Beto", "2024-03-17"),
		seedClient("3", "300", "Carla", "2024-03-01"),
		seedClient("4", "400", "Dani", ""),
		seedClient("5", "500", "Eva", "2023-01-01"),
	)
	uc := newClientUC(repo, feed.NewMemory())

	st, err := uc.Stats(context.Background(), ownerA)
	require.NoError(t, err)
	assert.Equal(t, dto.ClientStatsResponse{
		Total: 5, Active: 2, Expired: 2, RecentlyExpired: 1,
		FixedSchedule: 1, Flexible: 1, UnknownExpiry: 1,
	}, *st)

	exp, err := uc.Expiring(context.Background(), ownerA, 7)
	require.NoError(t, err)
	require.Len(t, exp, 1)
	assert.Equal(t, "Beto", exp[0].Name)

	_, err = uc.Expiring(context.Background(), ownerA, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
