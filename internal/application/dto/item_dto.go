package dto

import "time"

// CreateItemRequest alta de artículo. Una cantidad inicial distinta de cero
// genera una entrada add en el libro mayor.
type CreateItemRequest struct {
	PartNumber  string `json:"part_number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity"`
	StoreID     string `json:"store_id"`
}

// UpdateItemRequest actualización parcial de artículo. Un cambio de StoreID
// se registra como par transfer_out/transfer_in en el libro mayor.
// La cantidad NO es editable por esta vía: solo el registrador la muta.
type UpdateItemRequest struct {
	PartNumber  *string `json:"part_number"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	StoreID     *string `json:"store_id"`
}

// AdjustStockRequest ajuste de stock. Mode: add | remove | set.
type AdjustStockRequest struct {
	Mode     string `json:"mode"`
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes"`
}

// TransferRequest traslado de unidades entre tiendas.
type TransferRequest struct {
	ItemID             string `json:"item_id"`
	SourceStoreID      string `json:"source_store_id"`
	DestinationStoreID string `json:"destination_store_id"`
	Quantity           int64  `json:"quantity"`
	Notes              string `json:"notes"`
}

// ItemResponse representación pública de un artículo.
type ItemResponse struct {
	ID          string    `json:"id"`
	PartNumber  string    `json:"part_number"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quantity    int64     `json:"quantity"`
	StoreID     string    `json:"store_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDetailResponse artículo más su historial de transacciones.
type ItemDetailResponse struct {
	Item         ItemResponse          `json:"item"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
