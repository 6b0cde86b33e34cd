package entity

import "time"

// Tipos de evento de seguridad registrados por la aplicación.
const (
	EventLoginSuccess       = "login_success"
	EventLoginFailed        = "login_failed"
	EventAccountLocked      = "account_locked"
	EventPasswordChanged    = "password_changed"
	EventUnauthorizedAccess = "unauthorized_access_attempt"
	EventInventoryTx        = "inventory_transaction"
	EventItemCreated        = "item_created"
	EventItemUpdated        = "item_updated"
	EventItemDeleted        = "item_deleted"
	EventStockAdjusted      = "stock_adjusted"
	EventItemTransferred    = "item_transferred"
	EventStoreCreated       = "store_created"
	EventStoreUpdated       = "store_updated"
	EventStoreDeleted       = "store_deleted"
	EventUserCreated        = "user_created"
	EventUserUpdated        = "user_updated"
	EventUserDeleted        = "user_deleted"
)

// SecurityLog es el registro de auditoría de un evento sensible. Es un efecto
// lateral best-effort: su escritura nunca aborta la operación principal.
type SecurityLog struct {
	ID          string
	UserID      string // vacío = actor anónimo (ej. login fallido de usuario inexistente)
	IPAddress   string
	EventType   string
	Description string
	CreatedAt   time.Time
}
