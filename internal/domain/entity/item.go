package entity

import "time"

// Categorías válidas de artículo (conjunto cerrado, persistido como string).
const (
	CategoryAccessories = "accessories"
	CategoryClothing    = "clothing"
)

var validCategories = map[string]bool{
	CategoryAccessories: true,
	CategoryClothing:    true,
}

// ParseCategory valida que el valor pertenezca al conjunto cerrado de categorías.
func ParseCategory(s string) (string, bool) {
	if validCategories[s] {
		return s, true
	}
	return "", false
}

// Item representa un artículo de inventario en una tienda.
//
// Invariante: Quantity debe ser siempre igual a la suma de QuantityChange de
// todas las transacciones que referencian el artículo. El único mutador de
// Quantity es el registrador de transacciones (ledger.Recorder); nada más
// escribe esa columna.
//
// PartNumber es la clave de negocio, única por tienda (un traslado puede crear
// el mismo PartNumber en la tienda destino).
type Item struct {
	ID          string
	PartNumber  string
	Name        string
	Description string
	Category    string // ver constantes Category*
	Quantity    int64  // puede ser negativo solo si lo fuerza admin_global
	StoreID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
