package repository

// InventorySummaryRow resultado crudo de la consulta de resumen de inventario
// por tienda y categoría. Lo produce la BD; el use case lo convierte en DTO.
type InventorySummaryRow struct {
	StoreID    string
	StoreName  string
	Category   string
	ItemCount  int64
	TotalUnits int64
	OutOfStock int64 // artículos con cantidad <= 0
}

// StoreStats métricas agregadas de una tienda para el dashboard.
type StoreStats struct {
	ItemCount  int64
	TotalUnits int64
	OutOfStock int64
}

// ReportRepository define las consultas de lectura para reportes y dashboard.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// InventorySummary agrupa inventario por tienda y categoría.
	// storeID vacío = todas las tiendas.
	InventorySummary(storeID string) ([]InventorySummaryRow, error)
	// GetStoreStats devuelve las métricas del dashboard de una tienda.
	GetStoreStats(storeID string) (*StoreStats, error)
}
