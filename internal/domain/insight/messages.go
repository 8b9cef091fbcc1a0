package insight

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// Kind sección a la que pertenece un insight.
type Kind string

// Secciones en su orden de prioridad.
const (
	KindInventory      Kind = "inventory"
	KindSales          Kind = "sales"
	KindDebts          Kind = "debts"
	KindGettingStarted Kind = "getting_started"
)

const (
	highValueCount = 3
	popularCount   = 2
)

// Insight mensaje legible derivado del snapshot.
type Insight struct {
	Kind    Kind
	Title   string
	Content string
}

// Options parámetros de Generate.
type Options struct {
	LowStockThreshold int
	Currency          string
	Language          language.Tag // formato de montos; por defecto español (250,00)
}

// Generate produce los insights en orden fijo: inventario, ventas, deudas.
// Si ninguna regla aplica devuelve un único insight de primeros pasos.
// Determinista para un mismo snapshot.
func Generate(s Snapshot, opts Options) []Insight {
	tag := opts.Language
	if tag == language.Und {
		tag = language.Spanish
	}
	p := message.NewPrinter(tag)
	money := func(d decimal.Decimal) string {
		f, _ := d.Round(2).Float64()
		return strings.TrimSpace(p.Sprintf("%.2f %s", f, opts.Currency))
	}

	var out []Insight

	if len(s.Products) > 0 {
		if low := LowStock(s, opts.LowStockThreshold); len(low) > 0 {
			out = append(out, Insight{
				Kind:    KindInventory,
				Title:   "Alerta de stock bajo",
				Content: plural(p, len(low), "producto tiene", "productos tienen") + " stock bajo. Considera reabastecer pronto.",
			})
		}
		top := HighestValue(s, highValueCount)
		out = append(out, Insight{
			Kind:    KindInventory,
			Title:   "Valor del inventario",
			Content: "Tus productos de mayor valor son " + productNames(top) + ".",
		})
	}

	if len(s.Sales) > 0 {
		out = append(out, Insight{
			Kind:  KindSales,
			Title: "Rendimiento de ventas",
			Content: "Ventas registradas: " + money(TotalRevenue(s)) + " en " +
				plural(p, len(s.Sales), "transacción", "transacciones") + ".",
		})

		var popular []string
		for _, ps := range TopSellers(s, popularCount) {
			if ps.QuantitySold > 0 {
				popular = append(popular, ps.Product.Name)
			}
		}
		if len(popular) > 0 {
			out = append(out, Insight{
				Kind:    KindSales,
				Title:   "Productos populares",
				Content: "Tus productos más vendidos son " + strings.Join(popular, ", ") + ".",
			})
		}

		if orphans := OrphanedSales(s); len(orphans) > 0 {
			out = append(out, Insight{
				Kind:    KindSales,
				Title:   "Ventas de productos eliminados",
				Content: plural(p, len(orphans), "venta hace", "ventas hacen") + " referencia a productos que ya no existen.",
			})
		}
	}

	if len(s.Creditors) > 0 || len(s.Debtors) > 0 {
		net := NetDebt(s)
		var content string
		switch {
		case net.IsPositive():
			content = "Tienes un saldo de deudas positivo de " + money(net) + " (te deben más de lo que debes)."
		case net.IsNegative():
			content = "Tienes un saldo de deudas negativo de " + money(net.Abs()) + " (debes más de lo que te deben)."
		default:
			content = "Tus deudas están equilibradas: lo que debes es igual a lo que te deben."
		}
		out = append(out, Insight{Kind: KindDebts, Title: "Gestión de deudas", Content: content})
	}

	if len(out) == 0 {
		out = append(out, Insight{
			Kind:    KindGettingStarted,
			Title:   "Primeros pasos",
			Content: "Agrega inventario, registra ventas y gestiona deudas para ver aquí tus insights.",
		})
	}
	return out
}

func plural(p *message.Printer, n int, one, many string) string {
	if n == 1 {
		return p.Sprintf("%d %s", n, one)
	}
	return p.Sprintf("%d %s", n, many)
}

func productNames(list []entity.Product) string {
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}
