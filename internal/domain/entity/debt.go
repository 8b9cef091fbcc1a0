package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de deuda (columna debts.type).
const (
	DebtOwedByBusiness = "owed_by_user" // acreedor: el negocio debe
	DebtOwedToBusiness = "owed_to_user" // deudor: le deben al negocio
)

// Debt registro común para acreedores y deudores.
type Debt struct {
	ID         string
	BusinessID string
	Type       string // owed_by_user, owed_to_user
	Name       string
	Amount     decimal.Decimal
	DueDate    string // YYYY-MM-DD, opcional
	CreatedAt  time.Time
}

// Creditor monto que el negocio debe a un tercero.
type Creditor = Debt

// Debtor monto que un tercero debe al negocio.
type Debtor = Debt
