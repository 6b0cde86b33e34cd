// Package pdf implementa la generación de reportes en PDF con Maroto v2:
// el reporte de inventario (tienda x categoría) y el de transacciones.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

func titleRow(title, subtitle string) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
	)
}

// GenerateInventoryReportPDF genera el PDF del reporte de inventario.
func (g *MarotoReportGenerator) GenerateInventoryReportPDF(_ context.Context, report usecase.InventoryReportData) ([]byte, error) {
	m := newDocument("Reporte de Inventario")
	m.AddRows(titleRow("REPORTE DE INVENTARIO",
		"Generado: "+report.GeneratedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(7).Add(
		headerCell(4, "Tienda"),
		headerCell(3, "Categoría"),
		headerCell(2, "Artículos"),
		headerCell(2, "Unidades"),
		headerCell(1, "Agotados"),
	))
	for _, r := range report.Rows {
		m.AddRows(row.New(6).Add(
			bodyCell(4, r.StoreName, align.Left),
			bodyCell(3, r.Category, align.Left),
			bodyCell(2, fmt.Sprintf("%d", r.ItemCount), align.Right),
			bodyCell(2, fmt.Sprintf("%d", r.TotalUnits), align.Right),
			bodyCell(1, fmt.Sprintf("%d", r.OutOfStock), align.Right),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateTransactionReportPDF genera el PDF del reporte de transacciones.
func (g *MarotoReportGenerator) GenerateTransactionReportPDF(_ context.Context, report usecase.TransactionReportData) ([]byte, error) {
	m := newDocument("Reporte de Transacciones")
	m.AddRows(titleRow("REPORTE DE TRANSACCIONES",
		fmt.Sprintf("Tienda: %s   |   Generado: %s",
			report.StoreName, report.GeneratedAt.Format("02/01/2006 15:04"))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(7).Add(
		headerCell(2, "Tiquete"),
		headerCell(3, "Fecha"),
		headerCell(3, "Tipo"),
		headerCell(2, "Cantidad"),
		headerCell(2, "Notas"),
	))
	for _, tx := range report.Rows {
		m.AddRows(row.New(6).Add(
			bodyCell(2, tx.TicketNumber, align.Left),
			bodyCell(3, tx.CreatedAt.Format("02/01/2006 15:04"), align.Left),
			bodyCell(3, tx.Type, align.Left),
			bodyCell(2, fmt.Sprintf("%+d", tx.QuantityChange), align.Right),
			bodyCell(2, tx.Notes, align.Left),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de transacciones: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerCell(size int, label string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}),
	)
}

func bodyCell(size int, value string, a align.Type) core.Col {
	return col.New(size).Add(
		text.New(value, props.Text{Size: 8, Align: a}),
	)
}
