package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salesflow-api/internal/domain/voice"
)

// systemPrompt define el rol del modelo y el formato de salida. Común a todos los proveedores.
const systemPrompt = `Eres el asistente de una tienda pequeña. Recibes un dictado ya transcrito en el que el
dueño registra un producto nuevo o una venta. Devuelve ÚNICAMENTE un objeto JSON (sin markdown) con esta estructura exacta:
{
  "intent": "<product o sale>",
  "name": "<nombre del producto tal como lo dijo>",
  "quantity": <entero o null>,
  "unit_price": <número o null>,
  "currency": "<código ISO de 3 letras o cadena vacía>",
  "category": "<categoría o cadena vacía>"
}

Reglas:
- intent = sale solo si el dictado dice que se vendió algo ("sold", "vendí").
- No inventes valores: si no se dijo, usa null o cadena vacía.
- No incluyas texto fuera del JSON.`

// draftPayload es el JSON que esperamos recibir del modelo.
type draftPayload struct {
	Intent    string   `json:"intent"`
	Name      string   `json:"name"`
	Quantity  *int     `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
	Currency  string   `json:"currency"`
	Category  string   `json:"category"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseDraft convierte la respuesta del modelo en un voice.Draft validado.
func parseDraft(rawText string) (*voice.Draft, error) {
	clean := extractJSON(rawText)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}
	var p draftPayload
	if err := json.Unmarshal([]byte(clean), &p); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON del borrador: %w (JSON extraído: %s)", err, clean)
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("AI: el modelo no devolvió nombre de producto")
	}

	d := &voice.Draft{
		Intent:   voice.IntentProduct,
		Name:     name,
		Currency: strings.ToUpper(strings.TrimSpace(p.Currency)),
		Category: strings.TrimSpace(p.Category),
	}
	if strings.EqualFold(p.Intent, string(voice.IntentSale)) {
		d.Intent = voice.IntentSale
	}
	if p.Quantity != nil && *p.Quantity >= 0 {
		q := *p.Quantity
		d.Quantity = &q
	}
	if p.UnitPrice != nil && *p.UnitPrice >= 0 {
		price := decimal.NewFromFloat(*p.UnitPrice).Round(2)
		d.UnitPrice = &price
	}
	return d, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
