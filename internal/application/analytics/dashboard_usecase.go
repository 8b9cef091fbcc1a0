// Package analytics arma el dashboard, los insights y los reportes descargables
// a partir del snapshot del negocio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
)

const dashboardTopSellers = 5 // productos en el widget del dashboard

// Settings parámetros de negocio configurables.
type Settings struct {
	LowStockThreshold int
	CostRatio         decimal.Decimal
	Currency          string
	Language          language.Tag
}

// DashboardUseCase genera el resumen, los insights y los reportes de un negocio.
//
// Todo se calcula sobre un único snapshot por petición, así los números de una
// misma respuesta son coherentes entre sí.
type DashboardUseCase struct {
	source   SnapshotSource
	settings Settings
	pdf      ReportGenerator
	xlsx     SalesExporter
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. pdf y xlsx pueden ser nil si no se usan.
func NewDashboardUseCase(source SnapshotSource, settings Settings, pdf ReportGenerator, xlsx SalesExporter) *DashboardUseCase {
	return &DashboardUseCase{source: source, settings: settings, pdf: pdf, xlsx: xlsx, now: time.Now}
}

// Settings devuelve la configuración activa (umbral, moneda).
func (uc *DashboardUseCase) Settings() Settings {
	return uc.settings
}

// GetSummary KPIs del negocio.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, businessID string) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.source.Snapshot(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	summary := uc.summarize(snap)
	return &summary, nil
}

func (uc *DashboardUseCase) summarize(snap insight.Snapshot) dto.DashboardSummaryDTO {
	low := insight.LowStock(snap, uc.settings.LowStockThreshold)
	lowDTO := make([]dto.ProductResponse, 0, len(low))
	for i := range low {
		lowDTO = append(lowDTO, dto.NewProductResponse(&low[i], uc.settings.LowStockThreshold))
	}

	top := make([]dto.TopSellerDTO, 0, dashboardTopSellers)
	for _, ps := range insight.TopSellers(snap, dashboardTopSellers) {
		if ps.QuantitySold == 0 {
			break
		}
		top = append(top, dto.TopSellerDTO{
			ProductID:    ps.Product.ID,
			ProductName:  ps.Product.Name,
			QuantitySold: ps.QuantitySold,
			Revenue:      ps.Revenue,
		})
	}

	return dto.DashboardSummaryDTO{
		Date:          uc.source.Today(),
		Currency:      uc.settings.Currency,
		TodaySales:    insight.TodaySalesTotal(snap, uc.source.Today()),
		TotalRevenue:  insight.TotalRevenue(snap),
		ProfitMargin:  insight.ProfitMargin(snap, uc.settings.CostRatio),
		StockBalance:  insight.StockBalance(snap),
		TotalOwed:     insight.TotalOwed(snap),
		TotalOwing:    insight.TotalOwing(snap),
		NetDebt:       insight.NetDebt(snap),
		ProductCount:  len(snap.Products),
		SalesCount:    len(snap.Sales),
		StaffCount:    len(snap.Staff),
		OrphanedSales: len(insight.OrphanedSales(snap)),
		LowStock:      lowDTO,
		TopSellers:    top,
	}
}

// GetInsights mensajes de recomendación en orden de prioridad.
func (uc *DashboardUseCase) GetInsights(ctx context.Context, businessID string) ([]dto.InsightDTO, error) {
	snap, err := uc.source.Snapshot(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return uc.insights(snap), nil
}

func (uc *DashboardUseCase) insights(snap insight.Snapshot) []dto.InsightDTO {
	list := insight.Generate(snap, insight.Options{
		LowStockThreshold: uc.settings.LowStockThreshold,
		Currency:          uc.settings.Currency,
		Language:          uc.settings.Language,
	})
	out := make([]dto.InsightDTO, 0, len(list))
	for _, in := range list {
		out = append(out, dto.InsightDTO{Kind: string(in.Kind), Title: in.Title, Content: in.Content})
	}
	return out
}

// ListSales ventas con el nombre del producto (vacío si fue eliminado).
func (uc *DashboardUseCase) ListSales(ctx context.Context, businessID string) ([]dto.SaleResponse, error) {
	snap, err := uc.source.Snapshot(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return salesWithNames(snap), nil
}

func salesWithNames(snap insight.Snapshot) []dto.SaleResponse {
	names := make(map[string]string, len(snap.Products))
	for _, p := range snap.Products {
		names[p.ID] = p.Name
	}
	out := make([]dto.SaleResponse, 0, len(snap.Sales))
	for i := range snap.Sales {
		out = append(out, dto.NewSaleResponse(&snap.Sales[i], names[snap.Sales[i].ProductID]))
	}
	return out
}

// BusinessReportPDF genera el reporte del negocio en PDF.
func (uc *DashboardUseCase) BusinessReportPDF(ctx context.Context, businessID, businessName string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte PDF no configurado")
	}
	snap, err := uc.source.Snapshot(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	products := make([]dto.ProductResponse, 0, len(snap.Products))
	for i := range snap.Products {
		products = append(products, dto.NewProductResponse(&snap.Products[i], uc.settings.LowStockThreshold))
	}
	return uc.pdf.GenerateBusinessReport(ctx, BusinessReport{
		BusinessName: businessName,
		GeneratedAt:  uc.now(),
		Summary:      uc.summarize(snap),
		Insights:     uc.insights(snap),
		Products:     products,
	})
}

// ExportSales hoja de cálculo con todas las ventas.
func (uc *DashboardUseCase) ExportSales(ctx context.Context, businessID string) ([]byte, error) {
	if uc.xlsx == nil {
		return nil, fmt.Errorf("exportación no configurada")
	}
	sales, err := uc.ListSales(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.ExportSales(ctx, sales, uc.settings.Currency)
}
