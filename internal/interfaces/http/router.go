package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      AuthService
	ClientUC    ClientService
	SaleUC      SaleService
	ReportUC    ReportService
	SlotUC      SlotService
	DashboardUC DashboardService
	JWTSecret   string
}

// CORS middleware para el frontend: Authorization permitido y preflight OPTIONS → 204.
// allowedOrigins separados por coma; vacío = cualquier origen, sin credenciales.
func CORS(allowedOrigins string) fiber.Handler {
	cfg := cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}
	if o := strings.TrimSpace(allowedOrigins); o != "" {
		cfg.AllowOrigins = o
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y cuenta activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveOwner(deps.AuthUC))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/verify", authHandler.Verify)

	// Clientes
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/stream", clientHandler.Stream)
	clients.Get("/stats", clientHandler.Stats)
	clients.Get("/expiring", clientHandler.Expiring)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Libro de ventas
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReportUC)
	sales.Get("/", saleHandler.List)
	sales.Get("/ledger", saleHandler.Ledger)
	sales.Get("/stream", saleHandler.Stream)
	sales.Get("/report.pdf", saleHandler.ReportPDF)
	sales.Get("/export.csv", saleHandler.ExportCSV)
	sales.Post("/", saleHandler.Create)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	// Turnos
	slots := protected.Group("/slots")
	slotHandler := NewSlotHandler(deps.SlotUC)
	slots.Get("/", slotHandler.List)
	slots.Post("/", slotHandler.Create)
	slots.Delete("/:id", slotHandler.Delete)
	slots.Post("/:id/clients", slotHandler.Assign)
	slots.Delete("/:id/clients/:client_id", slotHandler.Release)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
