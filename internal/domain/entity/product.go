package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un negocio.
// Quantity nunca queda negativa: las ventas que la dejarían bajo cero se rechazan.
type Product struct {
	ID         string
	BusinessID string
	Name       string
	UnitPrice  decimal.Decimal // precio de venta por unidad
	Quantity   int             // unidades disponibles
	Category   string
	Supplier   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockValue devuelve UnitPrice × Quantity.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductPatch campos opcionales para actualizar un producto (nil = sin cambio).
type ProductPatch struct {
	Name      *string
	UnitPrice *decimal.Decimal
	Quantity  *int
	Category  *string
	Supplier  *string
}
