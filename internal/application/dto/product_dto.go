package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"min=0"`
	Category  string          `json:"category" validate:"max=100"`
	Supplier  string          `json:"supplier" validate:"max=200"`
}

// UpdateProductRequest actualización parcial; los campos ausentes no cambian.
type UpdateProductRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=0"`
	Category  *string          `json:"category" validate:"omitempty,max=100"`
	Supplier  *string          `json:"supplier" validate:"omitempty,max=200"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	BusinessID string          `json:"business_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Category   string          `json:"category"`
	Supplier   string          `json:"supplier"`
	StockValue decimal.Decimal `json:"stock_value"`
	LowStock   bool            `json:"low_stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
