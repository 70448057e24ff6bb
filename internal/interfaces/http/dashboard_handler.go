package http

import (
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler maneja los endpoints del tablero de inicio.
type DashboardHandler struct {
	uc DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el estado de la cartera y los totales del día y del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (clients, today, month, expiring[5], date_label).
// No requiere parámetros; "hoy" se calcula en la zona horaria de la cuenta.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}

	summary, err := h.uc.GetSummary(c.Context(), ownerID)
	if err != nil {
		return writeError(c, err, "")
	}

	return c.JSON(summary)
}
