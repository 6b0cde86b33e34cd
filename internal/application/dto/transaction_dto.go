package dto

import "time"

// RegisterOutgoingRequest salida rápida de un accesorio (delta fijo de -1).
type RegisterOutgoingRequest struct {
	ItemID  string `json:"item_id"`
	StoreID string `json:"store_id"`
	Notes   string `json:"notes"`
}

// OutgoingTicketResponse comprobante de la salida registrada.
type OutgoingTicketResponse struct {
	TicketNumber string `json:"ticket_number"`
	ItemName     string `json:"item_name"`
	PartNumber   string `json:"part_number"`
	Timestamp    string `json:"timestamp"`
}

// TransactionResponse entrada del libro mayor.
type TransactionResponse struct {
	ID             string    `json:"id"`
	TicketNumber   string    `json:"ticket_number"`
	ItemID         string    `json:"item_id"`
	UserID         string    `json:"user_id"`
	StoreID        string    `json:"store_id"`
	Type           string    `json:"type"`
	QuantityChange int64     `json:"quantity_change"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionListResponse listado paginado de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
