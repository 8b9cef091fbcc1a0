package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, business_id, name, unit_price, quantity, category, supplier, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q         Querier
	forUpdate bool // dentro de TxRunner: GetByID bloquea la fila
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BusinessID, p.Name, p.UnitPrice, p.Quantity, p.Category, p.Supplier, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del negocio; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 AND id = $2`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, businessID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables; ErrNotFound si no existe.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, unit_price = $4, quantity = $5, category = $6, supplier = $7, updated_at = $8
		WHERE business_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.BusinessID, p.ID, p.Name, p.UnitPrice, p.Quantity, p.Category, p.Supplier, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Las ventas no se tocan.
func (r *ProductRepo) Delete(ctx context.Context, businessID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE business_id = $1 AND id = $2`, businessID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListByBusiness lista productos en orden de inserción.
func (r *ProductRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.UnitPrice, &p.Quantity, &p.Category, &p.Supplier, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
