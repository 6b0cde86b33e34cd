package entity

import "time"

// Store representa una tienda o sucursal; es el ámbito de todos los
// movimientos de inventario (multi-tienda).
type Store struct {
	ID        string
	Name      string // único
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
