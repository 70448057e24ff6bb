package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
)

// SlotHandler maneja los turnos con cupo (protegido).
type SlotHandler struct {
	uc SlotService
}

// NewSlotHandler construye el handler.
func NewSlotHandler(uc SlotService) *SlotHandler {
	return &SlotHandler{uc: uc}
}

// Create godoc
// @Summary      Crear turno
// @Tags         slots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSlotRequest  true  "Fecha, horario y cupo"
// @Success      201   {object}  dto.SlotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/slots [post]
func (h *SlotHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.CreateSlotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), ownerID, in)
	if err != nil {
		return writeError(c, err, "turno no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Turnos de un día
// @Tags         slots
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  true  "YYYY-MM-DD"
// @Success      200   {array}  dto.SlotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/slots [get]
func (h *SlotHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	date := c.Query("date")
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date es requerido", Field: "date"})
	}
	out, err := h.uc.ListByDate(c.Context(), ownerID, date)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Ubicar cliente en el turno
// @Tags         slots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del turno"
// @Param        body  body  dto.SlotAssignRequest  true  "client_id"
// @Success      200   {object}  dto.SlotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/slots/{id}/clients [post]
func (h *SlotHandler) Assign(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.SlotAssignRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Assign(c.Context(), ownerID, c.Params("id"), in.ClientID)
	if err != nil {
		return writeError(c, err, "turno o cliente no encontrado")
	}
	return c.JSON(out)
}

// Release godoc
// @Summary      Liberar el lugar de un cliente
// @Tags         slots
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del turno"
// @Param        client_id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.SlotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slots/{id}/clients/{client_id} [delete]
func (h *SlotHandler) Release(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.Release(c.Context(), ownerID, c.Params("id"), c.Params("client_id"))
	if err != nil {
		return writeError(c, err, "turno no encontrado o cliente no asignado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar turno
// @Tags         slots
// @Security     Bearer
// @Param        id   path  string  true  "ID del turno"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slots/{id} [delete]
func (h *SlotHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	if err := h.uc.Delete(c.Context(), ownerID, c.Params("id")); err != nil {
		return writeError(c, err, "turno no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
