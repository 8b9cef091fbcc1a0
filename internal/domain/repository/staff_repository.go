package repository

import (
	"context"

	"github.com/jhoicas/salesflow-api/internal/domain/entity"
)

// StaffRepository puerto de persistencia para StaffMember.
type StaffRepository interface {
	Create(ctx context.Context, member *entity.StaffMember) error
	GetByID(ctx context.Context, businessID, id string) (*entity.StaffMember, error)
	UpdateStatus(ctx context.Context, businessID, id, status string) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.StaffMember, error)
}
