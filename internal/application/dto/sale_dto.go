package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
// Amount omitido se calcula como precio × cantidad; Date omitida es hoy.
type CreateSaleRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// SaleResponse salida de una venta. ProductName vacío si el producto fue eliminado.
type SaleResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
