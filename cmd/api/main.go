package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/gymdesk-api/internal/application/analytics"
	"github.com/jhoicas/gymdesk-api/internal/application/auth"
	"github.com/jhoicas/gymdesk-api/internal/application/ports"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/gymdesk-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/gymdesk-api/internal/interfaces/http"
	"github.com/jhoicas/gymdesk-api/pkg/config"
	"github.com/jhoicas/gymdesk-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	// Feed de cambios: Redis pub/sub si hay varias instancias, memoria si corre una sola.
	var changes ports.ChangeFeed
	if cfg.Redis.Enabled() {
		rdb, err := feed.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		redisFeed := feed.NewRedis(rdb, log.Component("feed"))
		defer redisFeed.Close()
		changes = redisFeed
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: feed de cambios en memoria")
		changes = feed.NewMemory()
	}

	ownerRepo := postgres.NewOwnerRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	slotRepo := postgres.NewSlotRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	zones := usecase.NewZoneResolver(ownerRepo, usecase.LoadLocation(cfg.App.Timezone, time.UTC), log.Component("zones"))

	authUC := auth.NewAuthUseCase(ownerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.Timezone)
	clientUC := usecase.NewClientUseCase(clientRepo, changes, zones, log.Component("clients"))
	saleUC := usecase.NewSaleUseCase(saleRepo, changes, zones, log.Component("sales"))
	slotUC := usecase.NewSlotUseCase(slotRepo, clientRepo, txRunner, changes, zones, log.Component("slots"))
	reportUC := usecase.NewReportUseCase(saleUC, ownerRepo, zones, infrapdf.NewMarotoPDFGenerator(), spreadsheet.NewLedgerCSV())
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, clientUC, zones)

	// WriteTimeout en cero: los endpoints /stream mantienen la respuesta abierta.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.CORS(cfg.HTTP.AllowedOrigins))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GymDesk API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		SaleUC:      saleUC,
		ReportUC:    reportUC,
		SlotUC:      slotUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
