// Package voice interpreta dictados de texto (ya transcritos) en borradores de producto o venta.
package voice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salesflow-api/internal/domain"
)

// Intent qué quiso registrar el usuario.
type Intent string

// Intenciones reconocidas.
const (
	IntentProduct Intent = "product"
	IntentSale    Intent = "sale"
)

// Draft borrador resultante; los campos nil no se dictaron.
type Draft struct {
	Intent    Intent
	Name      string
	Quantity  *int
	UnitPrice *decimal.Decimal
	Currency  string
	Category  string
}

var (
	segmentSep = regexp.MustCompile(`,\s+|;\s*`)
	saleRe     = regexp.MustCompile(`(?i)^(?:sold|vend[ií])\s+(\d+)\s+(?:x\s+|de\s+|units?\s+of\s+|unidades\s+de\s+)?(.+)$`)
	quantityRe = regexp.MustCompile(`(?i)^(?:quantity|qty|cantidad)\s*[:=]?\s*(\d+)$`)
	priceRe    = regexp.MustCompile(`(?i)^(?:price|precio)\s*[:=]?\s*(\d+(?:[.,]\d{1,2})?)\s*([a-z]{3})?$`)
	categoryRe = regexp.MustCompile(`(?i)^(?:category|categor[ií]a)\s*[:=]?\s*(.+)$`)
)

// Parse convierte un dictado como "Rice 5kg, quantity 10, price 25 GHS" o "sold 5 Rice 5kg".
// Los segmentos van separados por ", " o ";". El primer segmento no reconocido es el nombre.
func Parse(transcript string) (*Draft, error) {
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(transcript), "."))
	if text == "" {
		return nil, domain.Invalid("transcript", "vacío")
	}

	d := &Draft{Intent: IntentProduct}
	for i, seg := range segmentSep.Split(text, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if i == 0 {
			if m := saleRe.FindStringSubmatch(seg); m != nil {
				d.Intent = IntentSale
				d.Quantity = atoiPtr(m[1])
				d.Name = strings.TrimSpace(m[2])
				continue
			}
		}
		switch {
		case quantityRe.MatchString(seg):
			d.Quantity = atoiPtr(quantityRe.FindStringSubmatch(seg)[1])
		case priceRe.MatchString(seg):
			m := priceRe.FindStringSubmatch(seg)
			price, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", "."))
			if err != nil {
				return nil, domain.Invalid("price", "monto no reconocido")
			}
			d.UnitPrice = &price
			d.Currency = strings.ToUpper(m[2])
		case categoryRe.MatchString(seg):
			d.Category = strings.TrimSpace(categoryRe.FindStringSubmatch(seg)[1])
		case d.Name == "":
			d.Name = seg
		}
	}

	if d.Name == "" {
		return nil, domain.Invalid("name", "no se reconoció el nombre del producto")
	}
	return d, nil
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
