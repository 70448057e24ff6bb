package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/feed"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gymdesk-api/pkg/config"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

// environment recursos compartidos por los subcomandos. Se abren a demanda:
// "gymctl --help" no necesita base de datos.
type environment struct {
	cfg   *config.Config
	log   *logger.Logger
	pool  *pgxpool.Pool
	feed  ports.ChangeFeed
	redis *feed.Redis
	zones *usecase.ZoneResolver
}

func (e *environment) load() error {
	if e.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg
	// Los logs van a stderr: stdout queda para las tablas.
	e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Out: os.Stderr})
	return nil
}

func (e *environment) db(ctx context.Context) (*pgxpool.Pool, error) {
	if e.pool != nil {
		return e.pool, nil
	}
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	e.pool = pool
	return pool, nil
}

// changes con Redis configurado, las pantallas abiertas en la API ven lo que escribe gymctl.
func (e *environment) changes(ctx context.Context) (ports.ChangeFeed, error) {
	if e.feed != nil {
		return e.feed, nil
	}
	if !e.cfg.Redis.Enabled() {
		e.feed = feed.NewMemory()
		return e.feed, nil
	}
	rdb, err := feed.NewRedisClient(ctx, e.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("conexión a Redis: %w", err)
	}
	e.redis = feed.NewRedis(rdb, e.log.Component("feed"))
	e.feed = e.redis
	return e.feed, nil
}

// owner verifica que la cuenta exista antes de leer o escribir en su nombre.
func (e *environment) owner(ctx context.Context, ownerID string) error {
	pool, err := e.db(ctx)
	if err != nil {
		return err
	}
	owner, err := postgres.NewOwnerRepository(pool).GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return fmt.Errorf("%w: %s", domain.ErrOwnerNotFound, ownerID)
	}
	return nil
}

func (e *environment) zoneResolver(pool *pgxpool.Pool) *usecase.ZoneResolver {
	if e.zones == nil {
		e.zones = usecase.NewZoneResolver(
			postgres.NewOwnerRepository(pool),
			usecase.LoadLocation(e.cfg.App.Timezone, time.UTC),
			e.log.Component("zones"),
		)
	}
	return e.zones
}

func (e *environment) clientUseCase(ctx context.Context) (*usecase.ClientUseCase, error) {
	pool, err := e.db(ctx)
	if err != nil {
		return nil, err
	}
	changes, err := e.changes(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewClientUseCase(postgres.NewClientRepository(pool), changes, e.zoneResolver(pool), e.log.Component("clients")), nil
}

func (e *environment) saleUseCase(ctx context.Context) (*usecase.SaleUseCase, error) {
	pool, err := e.db(ctx)
	if err != nil {
		return nil, err
	}
	changes, err := e.changes(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewSaleUseCase(postgres.NewSaleRepository(pool), changes, e.zoneResolver(pool), e.log.Component("sales")), nil
}

func (e *environment) close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.pool != nil {
		e.pool.Close()
	}
}
