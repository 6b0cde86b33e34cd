package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
)

// StoreHandler maneja las peticiones HTTP de tiendas (solo admin_global).
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "name, location"
// @Success      201   {object}  dto.StoreResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(requestContext(c), actor(c), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	resp, err := h.uc.List(requestContext(c), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Obtener tienda
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(requestContext(c), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la tienda"
// @Param        body  body  dto.UpdateStoreRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.StoreResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [put]
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStoreRequest
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
// @Summary      Eliminar tienda (solo si no tiene inventario)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la tienda"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [delete]
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(requestContext(c), actor(c), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "tienda eliminada"})
}
