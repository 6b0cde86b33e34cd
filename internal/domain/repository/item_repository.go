package repository

import "github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"

// ItemRepository define el puerto de persistencia para artículos de inventario.
// Usado dentro de transacciones de BD para garantizar consistencia con el
// libro mayor.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByPartNumberAndStore(partNumber, storeID string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE) para
	// serializar actualizaciones concurrentes sobre el mismo artículo.
	GetForUpdate(id string) (*entity.Item, error)
	// ApplyDelta suma delta a la cantidad en una sola sentencia
	// (quantity = quantity + $delta); nunca escribe un valor absoluto.
	ApplyDelta(id string, delta int64) error
	Update(item *entity.Item) error
	// ListByStore lista artículos de una tienda; category vacío = todas.
	ListByStore(storeID, category string, limit, offset int) ([]*entity.Item, error)
	Delete(id string) error
}
