package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// Service owns the staff roster. Every id-based operation is scoped to the
// caller's tenant; a foreign staff member reads as not found.
type Service struct {
	repo repository.StaffRepository
}

func NewService(repo repository.StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateStaff(ctx context.Context, tenantID uuid.UUID, req *model.CreateStaffRequest) (*model.StaffMember, error) {
	bookable := true
	if req.Bookable != nil {
		bookable = *req.Bookable
	}

	member := &model.StaffMember{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Bookable: bookable,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return member, nil
}

func (s *Service) GetStaff(ctx context.Context, tenantID, id uuid.UUID) (*model.StaffMember, error) {
	member, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.TenantID != tenantID {
		return nil, apperrors.NotFound("staff member", nil)
	}
	return member, nil
}

func (s *Service) UpdateStaff(ctx context.Context, tenantID, id uuid.UUID, req *model.UpdateStaffRequest) (*model.StaffMember, error) {
	member, err := s.GetStaff(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.Bookable != nil {
		member.Bookable = *req.Bookable
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) DeleteStaff(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.GetStaff(ctx, tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, tenantID uuid.UUID) ([]*model.StaffMember, error) {
	return s.repo.List(ctx, tenantID)
}
