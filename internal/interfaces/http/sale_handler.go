package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/application/usecase"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
)

// SaleHandler maneja el libro de ventas y sus exportaciones (protegido).
type SaleHandler struct {
	uc      SaleService
	reports ReportService
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc SaleService, reports ReportService) *SaleHandler {
	return &SaleHandler{uc: uc, reports: reports}
}

// List godoc
// @Summary      Listar movimientos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.List(c.Context(), ownerID)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Libro agrupado por año, mes y día
// @Description  q acepta un mes y/o año en español ("marzo 2024", "sept") combinado con texto libre.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Período y/o texto"
// @Success      200  {object}  dto.LedgerResponse
// @Router       /api/sales/ledger [get]
func (h *SaleHandler) Ledger(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	out, err := h.uc.Ledger(c.Context(), ownerID, c.Query("q"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Stream godoc
// @Summary      Libro en vivo
// @Description  text/event-stream: un evento "snapshot" con el libro agrupado cada vez que cambia.
// @Tags         sales
// @Security     Bearer
// @Produce      text/event-stream
// @Param        q  query  string  false  "Período y/o texto"
// @Success      200
// @Router       /api/sales/stream [get]
func (h *SaleHandler) Stream(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	query := strings.Clone(c.Query("q"))
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := h.uc.Watch(ctx, ownerID)
	if err != nil {
		cancel()
		return writeError(c, err, "")
	}
	return streamSnapshots(c, ch, cancel, func(sales []entity.Sale) any {
		return usecase.BuildLedgerResponse(sales, query)
	})
}

// Create godoc
// @Summary      Cargar movimiento
// @Description  mode=income (por defecto) guarda el monto positivo; mode=expense lo guarda negativo.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Fecha, monto, observaciones y modo"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.Context(), ownerID, in)
	if err != nil {
		return writeError(c, err, "movimiento no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Conserva el signo guardado; amount se toma en valor absoluto.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.SaleRequest  true  "Fecha, monto y observaciones"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), ownerID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "movimiento no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	if err := h.uc.Delete(c.Context(), ownerID, c.Params("id")); err != nil {
		return writeError(c, err, "movimiento no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func reportQuery(c *fiber.Ctx) dto.ReportQuery {
	return dto.ReportQuery{
		Year:    c.QueryInt("year", 0),
		Month:   c.QueryInt("month", 0),
		Charset: c.Query("charset"),
	}
}

// ReportPDF godoc
// @Summary      Libro del período en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   query  int  false  "Año (por defecto el actual)"
// @Param        month  query  int  false  "Mes 1-12 (vacío = año completo)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/report.pdf [get]
func (h *SaleHandler) ReportPDF(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	doc, name, err := h.reports.PDF(c.Context(), ownerID, reportQuery(c))
	if err != nil {
		return writeError(c, err, "cuenta no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name))
	return c.Send(doc)
}

// ExportCSV godoc
// @Summary      Libro del período como planilla
// @Tags         sales
// @Security     Bearer
// @Produce      text/csv
// @Param        year     query  int     false  "Año (por defecto el actual)"
// @Param        month    query  int     false  "Mes 1-12 (vacío = año completo)"
// @Param        charset  query  string  false  "utf-8|latin1"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/export.csv [get]
func (h *SaleHandler) ExportCSV(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return missingOwner(c)
	}
	q := reportQuery(c)
	data, name, err := h.reports.CSV(c.Context(), ownerID, q)
	if err != nil {
		return writeError(c, err, "cuenta no encontrada")
	}
	contentType := "text/csv; charset=utf-8"
	if strings.EqualFold(q.Charset, usecase.CharsetLatin1) {
		contentType = "text/csv; charset=windows-1252"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}
