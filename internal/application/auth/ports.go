package auth

import "context"

// LoginLimiter lleva la cuenta de intentos fallidos de ingreso por usuario y
// el bloqueo temporal de la cuenta. La implementación vive en Redis con TTL.
type LoginLimiter interface {
	// IsLocked indica si la cuenta está bloqueada actualmente.
	IsLocked(ctx context.Context, username string) (bool, error)
	// RegisterFailure incrementa el contador de fallos y devuelve el total vigente.
	RegisterFailure(ctx context.Context, username string) (int64, error)
	// Lock bloquea la cuenta por la ventana configurada.
	Lock(ctx context.Context, username string) error
	// Clear borra el contador de fallos (ingreso exitoso).
	Clear(ctx context.Context, username string) error
}

// SecurityLogger registra eventos de auditoría (best-effort).
type SecurityLogger interface {
	LogEvent(ctx context.Context, eventType, description, userID string)
}
