package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

type fakeServices struct {
	services map[uuid.UUID]*model.Service
	deleted  []uuid.UUID
	gets     int
}

func newFakeServices(services ...*model.Service) *fakeServices {
	f := &fakeServices{services: map[uuid.UUID]*model.Service{}}
	for _, svc := range services {
		f.services[svc.ID] = svc
	}
	return f
}

func (f *fakeServices) Create(ctx context.Context, svc *model.Service, staffIDs []uuid.UUID) error {
	svc.ID = uuid.New()
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServices) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	f.gets++
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, apperrors.NotFound("service", nil)
}

func (f *fakeServices) Update(ctx context.Context, svc *model.Service) error { return nil }

func (f *fakeServices) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeServices) List(ctx context.Context, tenantID uuid.UUID) ([]*model.Service, error) {
	return nil, nil
}

func (f *fakeServices) AssignStaff(ctx context.Context, serviceID uuid.UUID, staffIDs []uuid.UUID) error {
	return nil
}

type fakeStaff struct{}

func (f *fakeStaff) Create(ctx context.Context, staff *model.StaffMember) error { return nil }

func (f *fakeStaff) Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	return nil, apperrors.NotFound("staff member", nil)
}

func (f *fakeStaff) Update(ctx context.Context, staff *model.StaffMember) error { return nil }
func (f *fakeStaff) Delete(ctx context.Context, id uuid.UUID) error             { return nil }

func (f *fakeStaff) List(ctx context.Context, tenantID uuid.UUID) ([]*model.StaffMember, error) {
	return nil, nil
}

func (f *fakeStaff) ListEligibleForService(ctx context.Context, serviceID uuid.UUID) ([]*model.StaffMember, error) {
	return nil, nil
}

func testService(tenantID uuid.UUID) *model.Service {
	return &model.Service{
		Base:            model.Base{ID: uuid.New()},
		TenantID:        tenantID,
		Name:            "Consultation",
		DurationMinutes: 30,
		Active:          true,
	}
}

func TestGetServiceScopedToTenant(t *testing.T) {
	tenantID := uuid.New()
	svc := testService(tenantID)
	s := NewService(newFakeServices(svc), &fakeStaff{})
	ctx := context.Background()

	got, err := s.GetService(ctx, tenantID, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.ID, got.ID)

	_, err = s.GetService(ctx, uuid.New(), svc.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestGetServiceCachedStillScoped(t *testing.T) {
	tenantID := uuid.New()
	svc := testService(tenantID)
	repo := newFakeServices(svc)
	s := NewService(repo, &fakeStaff{})
	ctx := context.Background()

	// Warm the cache as the owning tenant, then probe as a stranger. The
	// cache must not leak across tenants.
	_, err := s.GetService(ctx, tenantID, svc.ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.gets)

	_, err = s.GetService(ctx, uuid.New(), svc.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Equal(t, 1, repo.gets, "the stranger's probe is answered from cache")
}

func TestUpdateServiceForeignTenant(t *testing.T) {
	svc := testService(uuid.New())
	s := NewService(newFakeServices(svc), &fakeStaff{})

	name := "Hijacked"
	_, err := s.UpdateService(context.Background(), uuid.New(), svc.ID, &model.UpdateServiceRequest{Name: &name})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Equal(t, "Consultation", svc.Name)
}

func TestDeleteServiceForeignTenant(t *testing.T) {
	svc := testService(uuid.New())
	repo := newFakeServices(svc)
	s := NewService(repo, &fakeStaff{})

	err := s.DeleteService(context.Background(), uuid.New(), svc.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Empty(t, repo.deleted)
}

func TestDeleteService(t *testing.T) {
	tenantID := uuid.New()
	svc := testService(tenantID)
	repo := newFakeServices(svc)
	s := NewService(repo, &fakeStaff{})

	require.NoError(t, s.DeleteService(context.Background(), tenantID, svc.ID))
	assert.Equal(t, []uuid.UUID{svc.ID}, repo.deleted)
}
