package usecase

import "context"

// SecurityLogger registra eventos de auditoría (best-effort).
type SecurityLogger interface {
	LogEvent(ctx context.Context, eventType, description, userID string)
}

// ReportPDFGenerator renderiza reportes como PDF. La implementación vive en
// infrastructure/pdf (Maroto).
type ReportPDFGenerator interface {
	GenerateInventoryReportPDF(ctx context.Context, report InventoryReportData) ([]byte, error)
	GenerateTransactionReportPDF(ctx context.Context, report TransactionReportData) ([]byte, error)
}
