package dto

import "time"

// CreateUserRequest alta de usuario (solo admin_global).
type CreateUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	StoreIDs []string `json:"store_ids"`
}

// UpdateUserRequest actualización parcial de usuario.
type UpdateUserRequest struct {
	Role     *string   `json:"role"`
	Password *string   `json:"password"`
	StoreIDs *[]string `json:"store_ids"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
