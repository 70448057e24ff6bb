package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain/client"
)

// defaultExpiringDays ventana por defecto de GET /api/clients/expiring.
const defaultExpiringDays = 7

// ClientHandler maneja las peticiones HTTP de la cartera de clientes (protegido).
type ClientHandler struct {
	uc ClientService
}

// NewClientHandler construye el handler.
func NewClientHandler(uc ClientService) *ClientHandler {
	return &ClientHandler{uc: uc}
}

func listQuery(c *fiber.Ctx) dto.ClientListQuery {
	return dto.ClientListQuery{
		Q:    strings.Clone(c.Query("q")),
		Sort: strings.Clone(c.Query("sort")),
		Dir:  strings.Clone(c.Query("dir")),
	}
}

// List godoc
// @Summary      Listar clientes
// @Description  Consulta vacía = solo activos. Con consulta = toda la cartera filtrada por nombre o DNI.
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        q     query  string  false  "Texto a buscar en nombre o DNI"
// @Param        sort  query  string  false  "name|dni|expires_on|days|start_time|comments|days_remaining"
// @Param        dir   query  string  false  "asc|desc"
// @Success      200   {object}  dto.ClientListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.List(c.Context(), ownerID, listQuery(c))
	if err != nil {
		return writeError(c, err, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Stream godoc
// @Summary      Listado de clientes en vivo
// @Description  text/event-stream: un evento "snapshot" con el listado cada vez que la cartera cambia.
// @Tags         clients
// @Security     Bearer
// @Produce      text/event-stream
// @Param        q     query  string  false  "Texto a buscar"
// @Param        sort  query  string  false  "Campo de orden"
// @Param        dir   query  string  false  "asc|desc"
// @Success      200
// @Router       /api/clients/stream [get]
func (h *ClientHandler) Stream(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	q := listQuery(c)
	st, err := usecase.ParseListQuery(q)
	if err != nil {
		return writeError(c, err, "")
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := h.uc.Watch(ctx, ownerID)
	if err != nil {
		cancel()
		return writeError(c, err, "")
	}
	return streamSnapshots(c, ch, cancel, func(views []client.View) any {
		return h.uc.Render(views, q, st)
	})
}

// Get godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.Get(c.Context(), ownerID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Alta de cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), ownerID, in)
	if err != nil {
		return writeError(c, err, "cliente no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Modificar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.ClientRequest  true  "Datos completos del cliente"
// @Success      200   {object}  dto.ClientView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), ownerID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	if err := h.uc.Delete(c.Context(), ownerID, c.Params("id")); err != nil {
		return writeError(c, err, "cliente no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Estadísticas de la cartera
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ClientStatsResponse
// @Router       /api/clients/stats [get]
func (h *ClientHandler) Stats(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.Stats(c.Context(), ownerID)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Clientes por vencer
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        within  query  int  false  "Días"  default(7)
// @Success      200     {array}  dto.ClientView
// @Router       /api/clients/expiring [get]
func (h *ClientHandler) Expiring(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	within := c.QueryInt("within", defaultExpiringDays)
	if within < 0 {
		within = defaultExpiringDays
	}
	out, err := h.uc.Expiring(c.Context(), ownerID, within)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
