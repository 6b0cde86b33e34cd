package repository

import (
	"time"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
)

// TransactionFilter filtros para el listado de transacciones (reportes).
type TransactionFilter struct {
	StoreID string
	ItemID  string
	Type    string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// TransactionRepository define el puerto de persistencia para el libro mayor.
// El libro es append-only: no hay Update; Delete existe solo como cascada de
// la eliminación de un artículo.
type TransactionRepository interface {
	// Create inserta la entrada. Devuelve domain.ErrDuplicate si el número de
	// tiquete ya existe (guardia de concurrencia del generador).
	Create(tx *entity.Transaction) error
	GetByTicket(ticketNumber string) (*entity.Transaction, error)
	// MaxTicketSequence devuelve la secuencia máxima de los tiquetes
	// existentes con prefijo "33" (0 si no hay ninguno).
	MaxTicketSequence() (int64, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.Transaction, error)
	List(filter TransactionFilter) ([]*entity.Transaction, error)
	DeleteByItem(itemID string) error
}
