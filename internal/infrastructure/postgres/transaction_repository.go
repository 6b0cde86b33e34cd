package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro mayor sobre PostgreSQL (usable con
// pool o tx). La tabla es append-only; ticket_number lleva constraint UNIQUE.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, ticket_number, item_id, user_id, store_id, type, quantity_change, notes, created_at`

// Create inserta la entrada. Una violación del UNIQUE de ticket_number se
// traduce a ErrDuplicate para que el registrador reintente la transacción.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, ticket_number, item_id, user_id, store_id, type, quantity_change, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.TicketNumber, tx.ItemID, tx.UserID, tx.StoreID,
		tx.Type, tx.QuantityChange, tx.Notes, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByTicket obtiene una entrada por número de tiquete. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByTicket(ticketNumber string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ticket_number = $1`
	var tx entity.Transaction
	err := r.q.QueryRow(context.Background(), query, ticketNumber).Scan(
		&tx.ID, &tx.TicketNumber, &tx.ItemID, &tx.UserID, &tx.StoreID,
		&tx.Type, &tx.QuantityChange, &tx.Notes, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// MaxTicketSequence devuelve la secuencia máxima de los tiquetes existentes
// con el prefijo del generador (0 si no hay ninguno). Debe ejecutarse dentro
// de la misma transacción que el insert para minimizar la ventana de carrera;
// el UNIQUE de ticket_number cierra la que queda.
func (r *TransactionRepo) MaxTicketSequence() (int64, error) {
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(ticket_number FROM 3) AS BIGINT)), 0)
		FROM transactions
		WHERE ticket_number LIKE $1`
	var max int64
	err := r.q.QueryRow(context.Background(), query, ledger.TicketPrefix+"%").Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max ticket sequence: %w", err)
	}
	return max, nil
}

// ListByItem lista las entradas de un artículo, más recientes primero.
func (r *TransactionRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE item_id = $1
		ORDER BY created_at DESC, ticket_number DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	return collectTransactions(rows)
}

// List lista entradas con filtros dinámicos (reportes).
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any
	pos := 1
	if filter.StoreID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, ticket_number DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return collectTransactions(rows)
}

// DeleteByItem elimina las entradas de un artículo (cascada de Delete de artículo).
func (r *TransactionRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete transactions by item: %w", err)
	}
	return nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(&tx.ID, &tx.TicketNumber, &tx.ItemID, &tx.UserID, &tx.StoreID,
			&tx.Type, &tx.QuantityChange, &tx.Notes, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
