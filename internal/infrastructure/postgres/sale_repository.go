package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas sobre PostgreSQL (solo inserción).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	date, err := parseDate(s.Date)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sales (id, business_id, product_id, quantity, amount, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.BusinessID, s.ProductID, s.Quantity, s.Amount, date, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByBusiness ventas en orden de inserción.
func (r *SaleRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, business_id, product_id, quantity, amount, sale_date, created_at
		FROM sales WHERE business_id = $1 ORDER BY seq`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		var date time.Time
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.ProductID, &s.Quantity, &s.Amount, &date, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.Date = formatDate(&date)
		list = append(list, &s)
	}
	return list, rows.Err()
}
