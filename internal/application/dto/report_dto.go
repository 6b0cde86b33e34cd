package dto

import "time"

// InventoryReportRow fila del reporte de inventario (tienda x categoría).
type InventoryReportRow struct {
	StoreID    string `json:"store_id"`
	StoreName  string `json:"store_name"`
	Category   string `json:"category"`
	ItemCount  int64  `json:"item_count"`
	TotalUnits int64  `json:"total_units"`
	OutOfStock int64  `json:"out_of_stock"`
}

// InventoryReportResponse reporte de inventario agregado.
type InventoryReportResponse struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []InventoryReportRow `json:"rows"`
}

// TransactionReportRequest filtros del reporte de transacciones.
type TransactionReportRequest struct {
	StoreID string `query:"store_id"`
	Type    string `query:"type"`
	From    string `query:"from"` // YYYY-MM-DD
	To      string `query:"to"`   // YYYY-MM-DD
	PageRequest
}

// DashboardStatsResponse métricas del dashboard de una tienda.
type DashboardStatsResponse struct {
	StoreID            string                `json:"store_id"`
	ItemCount          int64                 `json:"item_count"`
	TotalUnits         int64                 `json:"total_units"`
	OutOfStock         int64                 `json:"out_of_stock"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// SecurityLogResponse entrada del registro de auditoría.
type SecurityLogResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	IPAddress   string    `json:"ip_address"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
