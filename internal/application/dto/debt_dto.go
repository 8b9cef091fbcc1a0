package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDebtRequest entrada para acreedores y deudores.
type CreateDebtRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// DebtResponse salida de un acreedor o deudor.
type DebtResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   string          `json:"due_date,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// DebtsResponse GET /api/debts: ambas listas y el balance neto (deudores − acreedores).
type DebtsResponse struct {
	Creditors  []DebtResponse  `json:"creditors"`
	Debtors    []DebtResponse  `json:"debtors"`
	TotalOwed  decimal.Decimal `json:"total_owed"`
	TotalOwing decimal.Decimal `json:"total_owing"`
	NetBalance decimal.Decimal `json:"net_balance"`
}
