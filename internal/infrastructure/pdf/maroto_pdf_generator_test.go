package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "0.00 GHS", money(decimal.Zero, "GHS"))
	assert.Equal(t, "1,250.50 GHS", money(decimal.RequireFromString("1250.5"), "GHS"))
	assert.Equal(t, "-350.00", money(decimal.NewFromInt(-350), ""))
	assert.Equal(t, "1,000,000.00 USD", money(decimal.NewFromInt(1000000), "USD"))
}

func TestGenerateBusinessReport(t *testing.T) {
	report := analytics.BusinessReport{
		BusinessName: "Kofi Store",
		GeneratedAt:  time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
		Summary: dto.DashboardSummaryDTO{
			Date:         "2026-05-02",
			Currency:     "GHS",
			TodaySales:   decimal.NewFromInt(250),
			TotalRevenue: decimal.NewFromInt(250),
			ProfitMargin: decimal.NewFromInt(30),
			StockBalance: decimal.NewFromInt(750),
			NetDebt:      decimal.NewFromInt(-350),
		},
		Products: []dto.ProductResponse{
			{Name: "Rice (5kg)", Quantity: 15, UnitPrice: decimal.NewFromInt(50), StockValue: decimal.NewFromInt(750)},
			{Name: "Sugar", Quantity: 2, UnitPrice: decimal.NewFromInt(8), StockValue: decimal.NewFromInt(16), LowStock: true},
		},
		Insights: []dto.InsightDTO{{Kind: "debts", Title: "Gestión de deudas", Content: "Debes más de lo que te deben."}},
	}

	b, err := NewMarotoPDFGenerator().GenerateBusinessReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
