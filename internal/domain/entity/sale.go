package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha calendario usado por ventas y vencimientos.
const DateLayout = "2006-01-02"

// Sale representa una venta registrada. Inmutable una vez creada.
// Si el producto se elimina después, la venta conserva el ProductID (venta huérfana).
type Sale struct {
	ID         string
	BusinessID string
	ProductID  string
	Quantity   int
	Amount     decimal.Decimal // UnitPrice × Quantity al momento de la venta
	Date       string          // YYYY-MM-DD
	CreatedAt  time.Time
}
