package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

const (
	cacheTTL     = time.Minute
	cacheCleanup = 5 * time.Minute
)

// Service owns the tenant's offerings and their eligible-staff assignments.
// Reads sit on the availability hot path, so they go through a short-lived
// in-process cache; writes invalidate it synchronously. The booking index is
// never cached here.
type Service struct {
	services repository.ServiceRepository
	staff    repository.StaffRepository
	cache    *gocache.Cache
}

func NewService(services repository.ServiceRepository, staff repository.StaffRepository) *Service {
	return &Service{
		services: services,
		staff:    staff,
		cache:    gocache.New(cacheTTL, cacheCleanup),
	}
}

// GetService returns the service, scoped to the tenant. A service belonging
// to another tenant is indistinguishable from a missing one.
func (s *Service) GetService(ctx context.Context, tenantID, id uuid.UUID) (*model.Service, error) {
	key := serviceKey(id)
	if cached, found := s.cache.Get(key); found {
		svc := cached.(*model.Service)
		if svc.TenantID != tenantID {
			return nil, apperrors.NotFound("service", nil)
		}
		return svc, nil
	}

	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, svc, cacheTTL)
	if svc.TenantID != tenantID {
		return nil, apperrors.NotFound("service", nil)
	}
	return svc, nil
}

// EligibleStaff returns the bookable staff assigned to the service, in
// assignment order.
func (s *Service) EligibleStaff(ctx context.Context, serviceID uuid.UUID) ([]*model.StaffMember, error) {
	key := staffKey(serviceID)
	if cached, found := s.cache.Get(key); found {
		return cached.([]*model.StaffMember), nil
	}

	staff, err := s.staff.ListEligibleForService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, staff, cacheTTL)
	return staff, nil
}

func (s *Service) CreateService(ctx context.Context, tenantID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	staffIDs, err := parseStaffIDs(req.StaffIDs)
	if err != nil {
		return nil, err
	}

	svc := &model.Service{
		TenantID:        tenantID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		SlotInterval:    req.SlotInterval,
		Active:          true,
	}
	if err := s.services.Create(ctx, svc, staffIDs); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, tenantID, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.TenantID != tenantID {
		return nil, apperrors.NotFound("service", nil)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.SlotInterval != nil {
		svc.SlotInterval = *req.SlotInterval
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}

	if req.StaffIDs != nil {
		staffIDs, err := parseStaffIDs(req.StaffIDs)
		if err != nil {
			return nil, err
		}
		if err := s.services.AssignStaff(ctx, id, staffIDs); err != nil {
			return nil, fmt.Errorf("failed to assign staff: %w", err)
		}
	}

	s.invalidate(id)
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, tenantID, id uuid.UUID) error {
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return err
	}
	if svc.TenantID != tenantID {
		return apperrors.NotFound("service", nil)
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *Service) ListServices(ctx context.Context, tenantID uuid.UUID) ([]*model.Service, error) {
	return s.services.List(ctx, tenantID)
}

func (s *Service) invalidate(serviceID uuid.UUID) {
	s.cache.Delete(serviceKey(serviceID))
	s.cache.Delete(staffKey(serviceID))
}

func serviceKey(id uuid.UUID) string {
	return "service:" + id.String()
}

func staffKey(serviceID uuid.UUID) string {
	return "service_staff:" + serviceID.String()
}

func parseStaffIDs(ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid staff id %q", raw), err)
		}
		parsed = append(parsed, id)
	}
	return parsed, nil
}
