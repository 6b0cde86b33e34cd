package ledger

import (
	"context"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el libro mayor y
// la cantidad del artículo: o se persisten ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// SecurityLogger registra eventos de auditoría. Es best-effort: la
// implementación nunca devuelve error y un fallo de escritura no debe abortar
// la operación principal (política fail-open, ver DESIGN.md).
type SecurityLogger interface {
	LogEvent(ctx context.Context, eventType, description, userID string)
}
