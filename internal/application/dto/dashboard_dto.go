package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Date     string `json:"date"` // hoy, YYYY-MM-DD
	Currency string `json:"currency"`

	TodaySales   decimal.Decimal `json:"today_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // porcentaje
	StockBalance decimal.Decimal `json:"stock_balance"`

	TotalOwed  decimal.Decimal `json:"total_owed"`  // acreedores
	TotalOwing decimal.Decimal `json:"total_owing"` // deudores
	NetDebt    decimal.Decimal `json:"net_debt"`

	ProductCount  int `json:"product_count"`
	SalesCount    int `json:"sales_count"`
	StaffCount    int `json:"staff_count"`
	OrphanedSales int `json:"orphaned_sales"`

	LowStock   []ProductResponse `json:"low_stock"`
	TopSellers []TopSellerDTO    `json:"top_sellers"`
}

// TopSellerDTO producto con lo vendido acumulado.
type TopSellerDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// InsightDTO mensaje derivado para el panel de recomendaciones.
type InsightDTO struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
