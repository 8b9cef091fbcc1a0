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

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, business_id, name, email, role_label, status, created_at, updated_at`

// StaffRepo personal sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

func (r *StaffRepo) Create(ctx context.Context, m *entity.StaffMember) error {
	_, err := r.q.Exec(ctx, `INSERT INTO staff (`+staffColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.BusinessID, m.Name, m.Email, m.RoleLabel, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (r *StaffRepo) GetByID(ctx context.Context, businessID, id string) (*entity.StaffMember, error) {
	m, err := scanStaff(r.q.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE business_id = $1 AND id = $2`, businessID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return m, nil
}

func (r *StaffRepo) UpdateStatus(ctx context.Context, businessID, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE staff SET status = $3, updated_at = now() WHERE business_id = $1 AND id = $2`,
		businessID, id, status)
	if err != nil {
		return fmt.Errorf("update staff status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StaffRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.StaffMember, error) {
	rows, err := r.q.Query(ctx, `SELECT `+staffColumns+` FROM staff WHERE business_id = $1 ORDER BY seq`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StaffMember, 0)
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanStaff(row pgx.Row) (*entity.StaffMember, error) {
	var m entity.StaffMember
	if err := row.Scan(&m.ID, &m.BusinessID, &m.Name, &m.Email, &m.RoleLabel, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
