package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// ReportHandler maneja reportes, dashboard y el registro de auditoría.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryReport godoc
// @Summary      Reporte de inventario por tienda y categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "filtrar por tienda"
// @Param        format    query  string  false  "pdf para descargar el PDF"
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) InventoryReport(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if c.Query("format") == "pdf" {
		pdfBytes, err := h.uc.InventoryReportPDF(requestContext(c), storeID)
		if err != nil {
			return errorResponse(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
		return c.Send(pdfBytes)
	}
	resp, err := h.uc.InventoryReport(requestContext(c), storeID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// TransactionReport godoc
// @Summary      Reporte de transacciones con filtros
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "filtrar por tienda"
// @Param        type      query  string  false  "tipo de transacción"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD"
// @Param        format    query  string  false  "pdf para descargar el PDF"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/reports/transactions [get]
func (h *ReportHandler) TransactionReport(c *fiber.Ctx) error {
	var in dto.TransactionReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	if c.Query("format") == "pdf" {
		pdfBytes, err := h.uc.TransactionReportPDF(requestContext(c), in)
		if err != nil {
			return errorResponse(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-transacciones.pdf"`)
		return c.Send(pdfBytes)
	}
	resp, err := h.uc.TransactionReport(requestContext(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Dashboard godoc
// @Summary      Métricas de una tienda y transacciones recientes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true  "ID de la tienda"
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.DashboardStats(requestContext(c), actor(c), c.Query("store_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// SecurityLogs godoc
// @Summary      Consultar el registro de auditoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        user_id     query  string  false  "filtrar por usuario"
// @Param        event_type  query  string  false  "filtrar por tipo de evento"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.SecurityLogResponse
// @Router       /api/security-logs [get]
func (h *ReportHandler) SecurityLogs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.SecurityLogFilter{
		UserID:    c.Query("user_id"),
		EventType: c.Query("event_type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha desde inválida"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha hasta inválida"})
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	resp, err := h.uc.SecurityLogs(requestContext(c), filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
