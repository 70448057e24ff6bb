package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/pkg/jwt"
)

// Locals keys para OwnerID y Email en Fiber.
const (
	LocalOwnerID = "owner_id"
	LocalEmail   = "email"
)

// AuthMiddleware valida el Bearer Token JWT y extrae OwnerID y Email a c.Locals.
// Las rutas /stream aceptan además ?access_token=, porque EventSource no permite headers.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		ownerID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalOwnerID, ownerID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader == "" {
		if strings.HasSuffix(c.Path(), "/stream") {
			if q := strings.TrimSpace(c.Query("access_token")); q != "" {
				return q, "", ""
			}
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	// fasthttp recorta los espacios finales: "Bearer   " llega como "Bearer".
	if strings.EqualFold(authHeader, "Bearer") {
		return "", "MISSING_TOKEN", "token vacío"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// GetOwnerID devuelve el OwnerID del contexto (después del middleware de auth).
func GetOwnerID(c *fiber.Ctx) string {
	v := c.Locals(LocalOwnerID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
