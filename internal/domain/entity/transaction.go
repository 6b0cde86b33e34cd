package entity

import "time"

// Tipos de transacción de inventario (conjunto cerrado, persistido como string).
const (
	TransactionAdd         = "add"
	TransactionRemove      = "remove"
	TransactionTransferIn  = "transfer_in"
	TransactionTransferOut = "transfer_out"
	TransactionAdjustment  = "stock_adjustment"
)

var validTransactionTypes = map[string]bool{
	TransactionAdd:         true,
	TransactionRemove:      true,
	TransactionTransferIn:  true,
	TransactionTransferOut: true,
	TransactionAdjustment:  true,
}

// ParseTransactionType valida que el valor pertenezca al conjunto cerrado de tipos.
func ParseTransactionType(s string) (string, bool) {
	if validTransactionTypes[s] {
		return s, true
	}
	return "", false
}

// Transaction es una entrada del libro mayor de inventario: el registro
// inmutable de un cambio de cantidad sobre un artículo.
//
// Inmutable una vez creada: nunca se actualiza, solo se agrega. Se elimina
// únicamente en cascada cuando se elimina el artículo que la posee. La crea
// exclusivamente ledger.Recorder; ningún otro camino inserta en esta tabla.
type Transaction struct {
	ID             string
	TicketNumber   string // "33" + secuencia decimal con padding a 8 dígitos; único
	ItemID         string
	UserID         string
	StoreID        string
	Type           string // ver constantes Transaction*
	QuantityChange int64  // positivo entradas, negativo salidas
	Notes          string
	CreatedAt      time.Time
}
