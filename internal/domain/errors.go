package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrAccountLocked     = errors.New("cuenta bloqueada por intentos fallidos")
	ErrPasswordExpired   = errors.New("la contraseña ha expirado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrNegativeQuantity  = errors.New("la operación dejaría inventario negativo")
	ErrStoreNotEmpty     = errors.New("la tienda todavía tiene inventario asociado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)
