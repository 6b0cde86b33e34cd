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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, part_number, name, description, category, quantity, store_id, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.PartNumber, &it.Name, &it.Description, &it.Category,
		&it.Quantity, &it.StoreID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// Create persiste un artículo. El número de parte es único por tienda.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, part_number, name, description, category, quantity, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.PartNumber, item.Name, item.Description, item.Category,
		item.Quantity, item.StoreID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByPartNumberAndStore obtiene un artículo por su clave de negocio.
func (r *ItemRepo) GetByPartNumberAndStore(partNumber, storeID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE part_number = $1 AND store_id = $2`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, partNumber, storeID))
	if err != nil {
		return nil, fmt.Errorf("get item by part number: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE) para
// serializar los registros concurrentes del libro mayor sobre el mismo artículo.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// ApplyDelta suma delta a la cantidad en una sola sentencia. Nunca escribe un
// valor absoluto: combinado con el bloqueo de fila evita lecturas obsoletas.
func (r *ItemRepo) ApplyDelta(id string, delta int64) error {
	query := `UPDATE items SET quantity = quantity + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, delta)
	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los atributos del artículo. No toca quantity: esa columna
// solo la escribe ApplyDelta.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET part_number = $2, name = $3, description = $4, category = $5, store_id = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.PartNumber, item.Name, item.Description, item.Category,
		item.StoreID, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStore lista artículos de una tienda; category vacío = todas.
func (r *ItemRepo) ListByStore(storeID, category string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.PartNumber, &it.Name, &it.Description, &it.Category,
			&it.Quantity, &it.StoreID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina un artículo por ID.
func (r *ItemRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
