package postgres

import (
	"context"
	"fmt"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventorySummary agrupa el inventario por tienda y categoría.
// storeID vacío cubre todas las tiendas.
func (r *ReportRepo) InventorySummary(storeID string) ([]repository.InventorySummaryRow, error) {
	query := `
		SELECT s.id, s.name, i.category,
		       COUNT(i.id),
		       COALESCE(SUM(i.quantity), 0),
		       COUNT(i.id) FILTER (WHERE i.quantity <= 0)
		FROM stores s
		JOIN items i ON i.store_id = s.id`
	var args []any
	if storeID != "" {
		query += ` WHERE s.id = $1`
		args = append(args, storeID)
	}
	query += `
		GROUP BY s.id, s.name, i.category
		ORDER BY s.name, i.category`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	defer rows.Close()
	var list []repository.InventorySummaryRow
	for rows.Next() {
		var row repository.InventorySummaryRow
		if err := rows.Scan(&row.StoreID, &row.StoreName, &row.Category,
			&row.ItemCount, &row.TotalUnits, &row.OutOfStock); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetStoreStats devuelve las métricas del dashboard de una tienda.
func (r *ReportRepo) GetStoreStats(storeID string) (*repository.StoreStats, error) {
	query := `
		SELECT COUNT(id),
		       COALESCE(SUM(quantity), 0),
		       COUNT(id) FILTER (WHERE quantity <= 0)
		FROM items WHERE store_id = $1`
	var stats repository.StoreStats
	err := r.q.QueryRow(context.Background(), query, storeID).Scan(
		&stats.ItemCount, &stats.TotalUnits, &stats.OutOfStock)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}
	return &stats, nil
}
