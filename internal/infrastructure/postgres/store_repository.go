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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Name, &s.Location, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persiste una tienda. El nombre es único.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Location, store.CreatedAt, store.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID. Devuelve (nil, nil) si no existe.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT id, name, location, created_at, updated_at FROM stores WHERE id = $1`
	s, err := scanStore(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// GetByName obtiene una tienda por nombre.
func (r *StoreRepo) GetByName(name string) (*entity.Store, error) {
	query := `SELECT id, name, location, created_at, updated_at FROM stores WHERE name = $1`
	s, err := scanStore(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("get store by name: %w", err)
	}
	return s, nil
}

// Update actualiza nombre y ubicación.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `UPDATE stores SET name = $2, location = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.Location, store.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las tiendas ordenadas por nombre.
func (r *StoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM stores ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
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

// HasInventory indica si la tienda todavía tiene artículos asociados.
func (r *StoreRepo) HasInventory(storeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE store_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, storeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has inventory: %w", err)
	}
	return exists, nil
}

// Delete elimina una tienda por ID.
func (r *StoreRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
