package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
// La asignación de tiendas vive en la tabla de unión user_stores.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, password_hash, role, password_changed_at, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.PasswordChangedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario. El username es único.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, password_changed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.PasswordHash, user.Role,
		user.PasswordChangedAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, username))
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Update actualiza rol, contraseña y marcas de tiempo.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET password_hash = $2, role = $3, password_changed_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		user.ID, user.PasswordHash, user.Role, user.PasswordChangedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista los usuarios ordenados por username.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role,
			&u.PasswordChangedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario y sus asignaciones de tienda.
func (r *UserRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM user_stores WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("delete user stores: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListStores devuelve las tiendas asignadas al usuario.
func (r *UserRepo) ListStores(userID string) ([]*entity.Store, error) {
	query := `
		SELECT s.id, s.name, s.location, s.created_at, s.updated_at
		FROM stores s
		JOIN user_stores us ON us.store_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ReplaceStores reemplaza la asignación completa de tiendas del usuario.
func (r *UserRepo) ReplaceStores(userID string, storeIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM user_stores WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user stores: %w", err)
	}
	for _, storeID := range storeIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO user_stores (user_id, store_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, storeID)
		if err != nil {
			return fmt.Errorf("assign store %s: %w", storeID, err)
		}
	}
	return nil
}

// HasStoreAccess indica si el usuario está asignado a la tienda.
func (r *UserRepo) HasStoreAccess(userID, storeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_stores WHERE user_id = $1 AND store_id = $2)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, storeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has store access: %w", err)
	}
	return exists, nil
}
