package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
)

// AuthHandler maneja registro, login y reconfirmación.
type AuthHandler struct {
	uc AuthService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc AuthService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, business_name, business_kind"
// @Success      201   {object}  dto.OwnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	owner, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err, "cuenta no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(owner)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err, "cuenta no encontrada")
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Reconfirmar contraseña
// @Description  Se pide antes de abrir vistas sensibles (libro de ventas). Una contraseña incorrecta devuelve verified=false.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyRequest  true  "password"
// @Success      200   {object}  dto.VerifyResponse
// @Router       /api/auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.VerifyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Verify(c.Context(), ownerID, in)
	if err != nil {
		return writeError(c, err, "cuenta no encontrada")
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Cuenta autenticada
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OwnerResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.Me(c.Context(), ownerID)
	if err != nil {
		return writeError(c, err, "cuenta no encontrada")
	}
	return c.JSON(out)
}
