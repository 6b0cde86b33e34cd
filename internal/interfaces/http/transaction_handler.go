package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
)

// TransactionHandler maneja el libro mayor vía HTTP: la salida rápida de
// accesorios, el listado de transacciones y la búsqueda por tiquete.
type TransactionHandler struct {
	outgoing *ledger.OutgoingUseCase
	reports  *usecase.ReportUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(outgoing *ledger.OutgoingUseCase, reports *usecase.ReportUseCase) *TransactionHandler {
	return &TransactionHandler{outgoing: outgoing, reports: reports}
}

// RegisterOutgoing godoc
// @Summary      Registrar salida rápida de un accesorio (una unidad)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterOutgoingRequest  true  "item_id, store_id, notes"
// @Success      201   {object}  dto.OutgoingTicketResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions/outgoing [post]
func (h *TransactionHandler) RegisterOutgoing(c *fiber.Ctx) error {
	var in dto.RegisterOutgoingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ticket, reason, err := h.outgoing.Register(requestContext(c), in.ItemID, GetUserID(c), GetRole(c), in.StoreID, in.Notes)
	if err != nil {
		return errorResponse(c, err)
	}
	if reason != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REJECTED", Message: string(reason)})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OutgoingTicketResponse{
		TicketNumber: ticket.TicketNumber,
		ItemName:     ticket.ItemName,
		PartNumber:   ticket.PartNumber,
		Timestamp:    ticket.Timestamp,
	})
}

// List godoc
// @Summary      Listar transacciones con filtros
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "filtrar por tienda"
// @Param        type      query  string  false  "add | remove | transfer_in | transfer_out | stock_adjustment"
// @Param        from      query  string  false  "YYYY-MM-DD"
// @Param        to        query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.TransactionReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	resp, err := h.reports.TransactionReport(requestContext(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// GetByTicket godoc
// @Summary      Buscar transacción por número de tiquete
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        ticket  path  string  true  "número de tiquete (33XXXXXXXX)"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{ticket} [get]
func (h *TransactionHandler) GetByTicket(c *fiber.Ctx) error {
	resp, err := h.reports.TransactionByTicket(requestContext(c), c.Params("ticket"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}
