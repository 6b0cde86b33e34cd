package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

// InventoryReportData datos del reporte de inventario listos para renderizar.
type InventoryReportData struct {
	GeneratedAt time.Time
	Rows        []dto.InventoryReportRow
}

// TransactionReportData datos del reporte de transacciones listos para renderizar.
type TransactionReportData struct {
	GeneratedAt time.Time
	StoreName   string
	Rows        []dto.TransactionResponse
}

// ReportUseCase reportes, dashboard y consulta del registro de auditoría.
// Reservado a admin_global en el router, salvo el dashboard.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	txRepo     repository.TransactionRepository
	storeRepo  repository.StoreRepository
	logRepo    repository.SecurityLogRepository
	pdf        ReportPDFGenerator
	access     *ledger.StoreAccessChecker
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	txRepo repository.TransactionRepository,
	storeRepo repository.StoreRepository,
	logRepo repository.SecurityLogRepository,
	pdf ReportPDFGenerator,
	access *ledger.StoreAccessChecker,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		txRepo:     txRepo,
		storeRepo:  storeRepo,
		logRepo:    logRepo,
		pdf:        pdf,
		access:     access,
	}
}

// InventoryReport agrega el inventario por tienda y categoría.
// storeID vacío cubre todas las tiendas.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, storeID string) (*dto.InventoryReportResponse, error) {
	rows, err := uc.reportRepo.InventorySummary(storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventoryReportRow{
			StoreID:    r.StoreID,
			StoreName:  r.StoreName,
			Category:   r.Category,
			ItemCount:  r.ItemCount,
			TotalUnits: r.TotalUnits,
			OutOfStock: r.OutOfStock,
		})
	}
	return &dto.InventoryReportResponse{GeneratedAt: time.Now(), Rows: out}, nil
}

// InventoryReportPDF renderiza el reporte de inventario como PDF.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context, storeID string) ([]byte, error) {
	report, err := uc.InventoryReport(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInventoryReportPDF(ctx, InventoryReportData{
		GeneratedAt: report.GeneratedAt,
		Rows:        report.Rows,
	})
}

const reportDateLayout = "2006-01-02"

// buildTransactionFilter convierte el request en filtro de repositorio,
// validando tipo y fechas.
func buildTransactionFilter(in dto.TransactionReportRequest) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{
		StoreID: in.StoreID,
		Limit:   in.Limit,
		Offset:  in.Offset,
	}
	if in.Type != "" {
		t, ok := entity.ParseTransactionType(in.Type)
		if !ok {
			return filter, domain.ErrInvalidInput
		}
		filter.Type = t
	}
	if in.From != "" {
		from, err := time.Parse(reportDateLayout, in.From)
		if err != nil {
			return filter, fmt.Errorf("fecha desde: %w", domain.ErrInvalidInput)
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse(reportDateLayout, in.To)
		if err != nil {
			return filter, fmt.Errorf("fecha hasta: %w", domain.ErrInvalidInput)
		}
		// inclusivo hasta el final del día
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter, nil
}

// TransactionReport lista entradas del libro mayor con filtros de reporte.
func (uc *ReportUseCase) TransactionReport(ctx context.Context, in dto.TransactionReportRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()
	filter, err := buildTransactionFilter(in)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, *toTransactionResponse(tx))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// TransactionReportPDF renderiza el reporte de transacciones como PDF.
func (uc *ReportUseCase) TransactionReportPDF(ctx context.Context, in dto.TransactionReportRequest) ([]byte, error) {
	report, err := uc.TransactionReport(ctx, in)
	if err != nil {
		return nil, err
	}
	storeName := "todas las tiendas"
	if in.StoreID != "" {
		store, err := uc.storeRepo.GetByID(in.StoreID)
		if err != nil {
			return nil, err
		}
		if store != nil {
			storeName = store.Name
		}
	}
	return uc.pdf.GenerateTransactionReportPDF(ctx, TransactionReportData{
		GeneratedAt: time.Now(),
		StoreName:   storeName,
		Rows:        report.Items,
	})
}

// TransactionByTicket busca una entrada del libro mayor por número de tiquete.
func (uc *ReportUseCase) TransactionByTicket(ctx context.Context, ticketNumber string) (*dto.TransactionResponse, error) {
	tx, err := uc.txRepo.GetByTicket(ticketNumber)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(tx), nil
}

// DashboardStats métricas de una tienda más sus transacciones recientes.
// El rol user solo puede consultar sus tiendas asignadas.
func (uc *ReportUseCase) DashboardStats(ctx context.Context, actor Actor, storeID string) (*dto.DashboardStatsResponse, error) {
	if err := uc.access.Check(ctx, actor.UserID, actor.Role, storeID); err != nil {
		return nil, err
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	stats, err := uc.reportRepo.GetStoreStats(storeID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.txRepo.List(repository.TransactionFilter{StoreID: storeID, Limit: 10})
	if err != nil {
		return nil, err
	}
	txs := make([]dto.TransactionResponse, 0, len(recent))
	for _, tx := range recent {
		txs = append(txs, *toTransactionResponse(tx))
	}
	return &dto.DashboardStatsResponse{
		StoreID:            storeID,
		ItemCount:          stats.ItemCount,
		TotalUnits:         stats.TotalUnits,
		OutOfStock:         stats.OutOfStock,
		RecentTransactions: txs,
	}, nil
}

// SecurityLogs consulta el registro de auditoría.
func (uc *ReportUseCase) SecurityLogs(ctx context.Context, filter repository.SecurityLogFilter) ([]dto.SecurityLogResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	logs, err := uc.logRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SecurityLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.SecurityLogResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			IPAddress:   l.IPAddress,
			EventType:   l.EventType,
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		})
	}
	return out, nil
}
