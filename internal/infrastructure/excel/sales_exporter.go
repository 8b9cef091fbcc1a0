// Package excel exporta ventas a hojas de cálculo XLSX.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/salesflow-api/internal/application/analytics"
	"github.com/jhoicas/salesflow-api/internal/application/dto"
)

var _ analytics.SalesExporter = (*SalesExporter)(nil)

const sheetName = "Ventas"

var headers = []string{"Fecha", "Producto", "Cantidad", "Monto", "Moneda", "ID venta"}

// SalesExporter implementa analytics.SalesExporter con excelize.
type SalesExporter struct{}

// NewSalesExporter construye el exportador.
func NewSalesExporter() *SalesExporter { return &SalesExporter{} }

// ExportSales escribe una fila por venta y una fila final con el total.
func (e *SalesExporter) ExportSales(_ context.Context, sales []dto.SaleResponse, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, err
	}

	total := decimal.Zero
	rowNo := 2
	for _, s := range sales {
		amount, _ := s.Amount.Float64()
		name := s.ProductName
		if name == "" {
			name = "(producto eliminado)"
		}
		values := []interface{}{s.Date, name, s.Quantity, amount, currency, s.ID}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNo)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
		total = total.Add(s.Amount)
		rowNo++
	}

	totalF, _ := total.Float64()
	if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNo), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNo), totalF); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, rowNo, rowNo, bold); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheetName, "A", "B", 22)
	_ = f.SetColWidth(sheetName, "F", "F", 38)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
