package dto

import (
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/insight"
)

// NewProductResponse mapea un producto; LowStock según el umbral configurado.
func NewProductResponse(p *entity.Product, lowStockThreshold int) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		BusinessID: p.BusinessID,
		Name:       p.Name,
		UnitPrice:  p.UnitPrice,
		Quantity:   p.Quantity,
		Category:   p.Category,
		Supplier:   p.Supplier,
		StockValue: p.StockValue(),
		LowStock:   insight.IsLowStock(*p, lowStockThreshold),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewSaleResponse mapea una venta; productName vacío si el producto ya no existe.
func NewSaleResponse(s *entity.Sale, productName string) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: productName,
		Quantity:    s.Quantity,
		Amount:      s.Amount,
		Date:        s.Date,
		CreatedAt:   s.CreatedAt,
	}
}

// NewDebtResponse mapea un acreedor o deudor.
func NewDebtResponse(d *entity.Debt) DebtResponse {
	return DebtResponse{
		ID:        d.ID,
		Type:      d.Type,
		Name:      d.Name,
		Amount:    d.Amount,
		DueDate:   d.DueDate,
		CreatedAt: d.CreatedAt,
	}
}

// NewStaffResponse mapea un empleado.
func NewStaffResponse(m *entity.StaffMember) StaffResponse {
	return StaffResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		RoleLabel: m.RoleLabel,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
