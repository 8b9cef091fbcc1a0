package excel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/salesflow-api/internal/application/dto"
	"github.com/jhoicas/salesflow-api/internal/infrastructure/excel"
)

func TestSalesExporter_ExportSales(t *testing.T) {
	sales := []dto.SaleResponse{
		{ID: "s1", ProductName: "Rice", Quantity: 5, Amount: decimal.NewFromInt(250), Date: "2026-05-02"},
		{ID: "s2", Quantity: 1, Amount: decimal.NewFromInt(8), Date: "2026-05-01"},
	}

	b, err := excel.NewSalesExporter().ExportSales(context.Background(), sales, "GHS")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, "Rice", rows[1][1])
	assert.Equal(t, "(producto eliminado)", rows[2][1])
	assert.Equal(t, "Total", rows[3][2])
	assert.Equal(t, "258", rows[3][3])
}
