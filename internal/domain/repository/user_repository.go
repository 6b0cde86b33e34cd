package repository

import "github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"

// UserRepository define el puerto de persistencia para User y su asignación
// de tiendas (tabla user_stores).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error

	// ListStores devuelve las tiendas asignadas al usuario.
	ListStores(userID string) ([]*entity.Store, error)
	// ReplaceStores reemplaza la asignación completa de tiendas del usuario.
	ReplaceStores(userID string, storeIDs []string) error
	// HasStoreAccess indica si el usuario está asignado a la tienda.
	// No considera roles: admin_global se resuelve en la capa de aplicación.
	HasStoreAccess(userID, storeID string) (bool, error)
}
