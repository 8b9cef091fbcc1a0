package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
)

// SnapshotSource fuente del estado del negocio (el Store).
type SnapshotSource interface {
	Snapshot(ctx context.Context, businessID string) (insight.Snapshot, error)
	Today() string
}

// BusinessReport datos que el generador de PDF pinta.
type BusinessReport struct {
	BusinessName string
	GeneratedAt  time.Time
	Summary      dto.DashboardSummaryDTO
	Insights     []dto.InsightDTO
	Products     []dto.ProductResponse
}

// ReportGenerator puerto de salida para el reporte PDF del negocio.
type ReportGenerator interface {
	GenerateBusinessReport(ctx context.Context, report BusinessReport) ([]byte, error)
}

// SalesExporter puerto de salida para exportar ventas a hoja de cálculo.
type SalesExporter interface {
	ExportSales(ctx context.Context, sales []dto.SaleResponse, currency string) ([]byte, error)
}
