package dto

import "github.com/shopspring/decimal"

// VoiceRequest texto dictado. Con Commit=true el borrador se guarda (producto o venta).
type VoiceRequest struct {
	Transcript string `json:"transcript" validate:"required,min=1,max=1000"`
	Commit     bool   `json:"commit"`
}

// VoiceDraftDTO interpretación del dictado.
type VoiceDraftDTO struct {
	Intent    string           `json:"intent"` // product, sale
	Name      string           `json:"name"`
	Quantity  *int             `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Currency  string           `json:"currency,omitempty"`
	Category  string           `json:"category,omitempty"`
	Source    string           `json:"source"` // llm, rules
}

// VoiceResponse borrador y, si hubo Commit, el registro creado.
type VoiceResponse struct {
	Draft   VoiceDraftDTO    `json:"draft"`
	Product *ProductResponse `json:"product,omitempty"`
	Sale    *SaleResponse    `json:"sale,omitempty"`
}
