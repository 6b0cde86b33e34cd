package dto

import "time"

// CreateStoreRequest alta de tienda.
type CreateStoreRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// UpdateStoreRequest actualización parcial de tienda.
type UpdateStoreRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// StoreResponse representación pública de una tienda.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse listado paginado de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
