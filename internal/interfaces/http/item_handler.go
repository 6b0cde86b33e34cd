package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
)

// ItemHandler maneja las peticiones HTTP de artículos de inventario.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar artículos de una tienda
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true   "ID de la tienda"
// @Param        category  query  string  false  "accessories | clothing"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	resp, err := h.uc.List(requestContext(c), actor(c), c.Query("store_id"), c.Query("category"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener artículo con su historial de transacciones
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	resp, err := h.uc.Get(requestContext(c), actor(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Create godoc
// @Summary      Crear artículo (cantidad inicial entra por el libro mayor)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "part_number, name, category, quantity, store_id"
// @Success      201   {object}  dto.ItemResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(requestContext(c), actor(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary      Actualizar artículo (la cantidad no es editable por esta vía)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Update(requestContext(c), actor(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar artículo (y sus transacciones, en cascada)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(requestContext(c), actor(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "artículo eliminado"})
}

// Adjust godoc
// @Summary      Ajustar stock (add | remove | set)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.AdjustStockRequest  true  "mode, quantity, notes"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/adjust [post]
func (h *ItemHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Adjust(requestContext(c), actor(c), c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Transfer godoc
// @Summary      Trasladar unidades entre tiendas
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "item_id, source_store_id, destination_store_id, quantity"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/transfer [post]
func (h *ItemHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Transfer(requestContext(c), actor(c), in); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado registrado"})
}
