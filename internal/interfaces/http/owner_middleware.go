package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
)

// ownerChecker es el contrato mínimo que necesita el middleware para verificar la cuenta.
// Lo implementa *auth.AuthUseCase.
type ownerChecker interface {
	IsActive(ctx context.Context, ownerID string) (bool, error)
}

// RequireActiveOwner devuelve un middleware Fiber que bloquea las cuentas suspendidas aunque
// su token siga vigente. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalOwnerID).
//
// Comportamiento:
//   - 403 Forbidden  → cuenta suspendida o eliminada.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay owner_id en el contexto, responde 401.
func RequireActiveOwner(checker ownerChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := GetOwnerID(c)
		if ownerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "owner_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.Context(), ownerID)
		if err != nil {
			c.Locals(LocalErrorCause, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "OWNER_CHECK_FAILED",
				Message: "no se pudo verificar la cuenta, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "cuenta inactiva o suspendida",
			})
		}

		return c.Next()
	}
}
