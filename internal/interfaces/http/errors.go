package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/infrastructure/audit"
)

// requestContext devuelve el contexto del request con la IP del cliente
// anotada para la auditoría.
func requestContext(c *fiber.Ctx) context.Context {
	return audit.WithIP(c.Context(), c.IP())
}

// actor extrae la identidad del token para la capa de aplicación.
func actor(c *fiber.Ctx) usecase.Actor {
	return usecase.Actor{UserID: GetUserID(c), Role: GetRole(c)}
}

// errorResponse traduce los errores de dominio a respuestas HTTP.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrAccountLocked):
		return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "ACCOUNT_LOCKED", Message: "cuenta bloqueada por intentos fallidos"})
	case errors.Is(err, domain.ErrPasswordExpired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PASSWORD_EXPIRED", Message: "la contraseña expiró; debe cambiarla"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: "el nombre de usuario ya existe"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrStoreNotEmpty):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STORE_NOT_EMPTY", Message: "la tienda tiene inventario asociado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrNegativeQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NEGATIVE_QUANTITY", Message: "la operación dejaría la cantidad en negativo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
