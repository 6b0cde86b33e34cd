package repository

import "github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	GetByName(name string) (*entity.Store, error)
	Update(store *entity.Store) error
	List(limit, offset int) ([]*entity.Store, error)
	// HasInventory indica si la tienda todavía tiene artículos asociados
	// (bloquea la eliminación).
	HasInventory(storeID string) (bool, error)
	Delete(id string) error
}
