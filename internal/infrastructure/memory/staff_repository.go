package memory

import (
	"context"
	"time"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo personal en memoria.
type StaffRepo struct {
	guard
}

// NewStaffRepository construye el repositorio.
func NewStaffRepository(db *DB) *StaffRepo {
	return &StaffRepo{guard{db: db}}
}

func (r *StaffRepo) Create(_ context.Context, member *entity.StaffMember) error {
	defer r.write()()
	cp := *member
	r.db.staff = append(r.db.staff, &cp)
	return nil
}

func (r *StaffRepo) GetByID(_ context.Context, businessID, id string) (*entity.StaffMember, error) {
	defer r.read()()
	for _, m := range r.db.staff {
		if m.ID == id && m.BusinessID == businessID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StaffRepo) UpdateStatus(_ context.Context, businessID, id, status string) error {
	defer r.write()()
	for i, m := range r.db.staff {
		if m.ID == id && m.BusinessID == businessID {
			cp := *m
			cp.Status = status
			cp.UpdatedAt = time.Now()
			r.db.staff[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *StaffRepo) ListByBusiness(_ context.Context, businessID string) ([]*entity.StaffMember, error) {
	defer r.read()()
	list := make([]*entity.StaffMember, 0)
	for _, m := range r.db.staff {
		if m.BusinessID == businessID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}
