// Package insight contiene las métricas derivadas del Store: funciones puras, sin efectos
// secundarios y sin errores. Colecciones vacías producen valores neutros (cero o listas vacías).
package insight

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Snapshot copia de solo lectura del estado de un negocio.
type Snapshot struct {
	Products  []entity.Product
	Sales     []entity.Sale
	Creditors []entity.Debt
	Debtors   []entity.Debt
	Staff     []entity.StaffMember
}

// ProductSales producto con su acumulado de ventas.
type ProductSales struct {
	Product      entity.Product
	QuantitySold int
	Revenue      decimal.Decimal
}

// TodaySalesTotal suma Amount de las ventas cuya fecha es exactamente today (YYYY-MM-DD).
func TodaySalesTotal(s Snapshot, today string) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range s.Sales {
		if sale.Date == today {
			total = total.Add(sale.Amount)
		}
	}
	return total
}

// TotalRevenue suma Amount de todas las ventas.
func TotalRevenue(s Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range s.Sales {
		total = total.Add(sale.Amount)
	}
	return total
}

// StockBalance valor del inventario: Σ UnitPrice × Quantity.
func StockBalance(s Snapshot) decimal.Decimal {
	total := decimal.Zero
	for i := range s.Products {
		total = total.Add(s.Products[i].StockValue())
	}
	return total
}

// ProfitMargin margen estimado en porcentaje asumiendo que el costo de lo vendido es
// costRatio × ingresos. Es una heurística, no un costeo real. Devuelve 0 sin ingresos.
func ProfitMargin(s Snapshot, costRatio decimal.Decimal) decimal.Decimal {
	revenue := TotalRevenue(s)
	if revenue.IsZero() {
		return decimal.Zero
	}
	cost := revenue.Mul(costRatio)
	return revenue.Sub(cost).Div(revenue).Mul(hundred).Round(2)
}

// TotalOwed lo que el negocio debe (acreedores).
func TotalOwed(s Snapshot) decimal.Decimal {
	return sumDebts(s.Creditors)
}

// TotalOwing lo que le deben al negocio (deudores).
func TotalOwing(s Snapshot) decimal.Decimal {
	return sumDebts(s.Debtors)
}

// NetDebt deudores − acreedores. Positivo: le deben más al negocio de lo que debe.
func NetDebt(s Snapshot) decimal.Decimal {
	return TotalOwing(s).Sub(TotalOwed(s))
}

func sumDebts(list []entity.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range list {
		total = total.Add(d.Amount)
	}
	return total
}

// IsLowStock informa si la cantidad está por debajo del umbral (estricto, sin histéresis).
func IsLowStock(p entity.Product, threshold int) bool {
	return p.Quantity < threshold
}

// LowStock productos con Quantity < threshold, en orden de inserción.
func LowStock(s Snapshot, threshold int) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range s.Products {
		if IsLowStock(p, threshold) {
			out = append(out, p)
		}
	}
	return out
}

// TopSellers productos ordenados por cantidad vendida (desc). Los empates conservan el
// orden de inserción. Las ventas huérfanas no cuentan. n <= 0 devuelve todos.
func TopSellers(s Snapshot, n int) []ProductSales {
	qty := make(map[string]int, len(s.Products))
	rev := make(map[string]decimal.Decimal, len(s.Products))
	for _, sale := range s.Sales {
		qty[sale.ProductID] += sale.Quantity
		rev[sale.ProductID] = rev[sale.ProductID].Add(sale.Amount)
	}

	out := make([]ProductSales, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, ProductSales{
			Product:      p,
			QuantitySold: qty[p.ID],
			Revenue:      rev[p.ID],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuantitySold > out[j].QuantitySold
	})
	return limit(out, n)
}

// HighestValue productos ordenados por valor en inventario (desc), estable.
func HighestValue(s Snapshot, n int) []entity.Product {
	out := make([]entity.Product, len(s.Products))
	copy(out, s.Products)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StockValue().GreaterThan(out[j].StockValue())
	})
	return limit(out, n)
}

// OrphanedSales ventas cuyo producto ya no existe.
func OrphanedSales(s Snapshot) []entity.Sale {
	known := make(map[string]struct{}, len(s.Products))
	for _, p := range s.Products {
		known[p.ID] = struct{}{}
	}
	out := make([]entity.Sale, 0)
	for _, sale := range s.Sales {
		if _, ok := known[sale.ProductID]; !ok {
			out = append(out, sale)
		}
	}
	return out
}

func limit[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
