package ledger

import (
	"context"
	"fmt"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
)

// StoreAccess consulta la asignación de tiendas de un usuario (tabla user_stores).
type StoreAccess interface {
	HasStoreAccess(userID, storeID string) (bool, error)
}

// StoreAccessChecker aplica la regla de alcance por tienda: partner_admin y
// admin_global operan sobre cualquier tienda; el rol user solo sobre sus
// tiendas asignadas. Un intento fuera de alcance emite el evento de auditoría
// y devuelve ErrForbidden.
type StoreAccessChecker struct {
	access StoreAccess
	audit  SecurityLogger
}

// NewStoreAccessChecker construye el verificador.
func NewStoreAccessChecker(access StoreAccess, audit SecurityLogger) *StoreAccessChecker {
	return &StoreAccessChecker{access: access, audit: audit}
}

// Check verifica que el usuario pueda operar sobre la tienda.
func (c *StoreAccessChecker) Check(ctx context.Context, userID, role, storeID string) error {
	if entity.RoleAtLeastPartnerAdmin(role) {
		return nil
	}
	ok, err := c.access.HasStoreAccess(userID, storeID)
	if err != nil {
		return fmt.Errorf("verificar acceso a tienda: %w", err)
	}
	if !ok {
		c.audit.LogEvent(ctx, entity.EventUnauthorizedAccess,
			fmt.Sprintf("acceso a tienda no asignada: %s", storeID), userID)
		return domain.ErrForbidden
	}
	return nil
}
