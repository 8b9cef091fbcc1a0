package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/application/store"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/memory"
)

const biz = "biz-1"

type fakePDF struct{ got analytics.BusinessReport }

func (f *fakePDF) GenerateBusinessReport(_ context.Context, r analytics.BusinessReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF"), nil
}

type fakeXLSX struct {
	sales    []dto.SaleResponse
	currency string
}

func (f *fakeXLSX) ExportSales(_ context.Context, sales []dto.SaleResponse, currency string) ([]byte, error) {
	f.sales = sales
	f.currency = currency
	return []byte("PK"), nil
}

func seeded(t *testing.T) *store.Store {
	t.Helper()
	db := memory.NewDB()
	clock := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	s := store.New(store.Deps{
		Products: memory.NewProductRepository(db),
		Sales:    memory.NewSaleRepository(db),
		Debts:    memory.NewDebtRepository(db),
		Staff:    memory.NewStaffRepository(db),
		Tx:       memory.NewTxRunner(db),
		Now:      func() time.Time { return clock },
	})
	ctx := context.Background()
	rice, err := s.AddProduct(ctx, biz, store.ProductInput{Name: "Rice", UnitPrice: decimal.NewFromInt(50), Quantity: 20})
	require.NoError(t, err)
	sugar, err := s.AddProduct(ctx, biz, store.ProductInput{Name: "Sugar", UnitPrice: decimal.NewFromInt(8), Quantity: 4})
	require.NoError(t, err)
	_, err = s.AddSale(ctx, biz, store.SaleInput{ProductID: rice.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = s.AddSale(ctx, biz, store.SaleInput{ProductID: sugar.ID, Quantity: 1, Date: "2026-05-01"})
	require.NoError(t, err)
	_, err = s.AddCreditor(ctx, biz, store.DebtInput{Name: "Mill", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	_, err = s.AddDebtor(ctx, biz, store.DebtInput{Name: "Kwame", Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)
	return s
}

func settings() analytics.Settings {
	return analytics.Settings{LowStockThreshold: 10, CostRatio: decimal.NewFromFloat(0.7), Currency: "GHS"}
}

func TestDashboard_GetSummary(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seeded(t), settings(), nil, nil)

	sum, err := uc.GetSummary(context.Background(), biz)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-02", sum.Date)
	assert.True(t, sum.TodaySales.Equal(decimal.NewFromInt(250)), sum.TodaySales.String())
	assert.True(t, sum.TotalRevenue.Equal(decimal.NewFromInt(258)))
	assert.True(t, sum.StockBalance.Equal(decimal.NewFromInt(774)), sum.StockBalance.String())
	assert.True(t, sum.NetDebt.Equal(decimal.NewFromInt(-350)))
	assert.True(t, sum.ProfitMargin.Equal(decimal.NewFromInt(30)), sum.ProfitMargin.String())
	assert.Equal(t, 2, sum.ProductCount)
	assert.Equal(t, 2, sum.SalesCount)
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, "Sugar", sum.LowStock[0].Name)
	assert.True(t, sum.LowStock[0].LowStock)
	require.Len(t, sum.TopSellers, 2)
	assert.Equal(t, "Rice", sum.TopSellers[0].ProductName)
}

func TestDashboard_GetInsights_Order(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seeded(t), settings(), nil, nil)

	list, err := uc.GetInsights(context.Background(), biz)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, string(insight.KindInventory), list[0].Kind)
	assert.Equal(t, string(insight.KindDebts), list[len(list)-1].Kind)
}

func TestDashboard_Reports(t *testing.T) {
	s := seeded(t)
	pdf := &fakePDF{}
	xlsx := &fakeXLSX{}
	uc := analytics.NewDashboardUseCase(s, settings(), pdf, xlsx)
	ctx := context.Background()

	b, err := uc.BusinessReportPDF(ctx, biz, "Kofi Store")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	assert.Equal(t, "Kofi Store", pdf.got.BusinessName)
	assert.Len(t, pdf.got.Products, 2)
	assert.NotEmpty(t, pdf.got.Insights)

	products, _ := s.ListProducts(ctx, biz)
	require.NoError(t, s.DeleteProduct(ctx, biz, products[1].ID))

	_, err = uc.ExportSales(ctx, biz)
	require.NoError(t, err)
	assert.Equal(t, "GHS", xlsx.currency)
	require.Len(t, xlsx.sales, 2)
	assert.Equal(t, "Rice", xlsx.sales[0].ProductName)
	assert.Empty(t, xlsx.sales[1].ProductName)
}

func TestDashboard_ReportsNotConfigured(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seeded(t), settings(), nil, nil)
	_, err := uc.BusinessReportPDF(context.Background(), biz, "X")
	assert.Error(t, err)
	_, err = uc.ExportSales(context.Background(), biz)
	assert.Error(t, err)
}
