package schedule

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

var testLogger = logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})

type fakeWindows struct {
	windows []*model.WorkWindow
	created []*model.WorkWindow
	deleted []uuid.UUID
}

func (f *fakeWindows) Create(ctx context.Context, window *model.WorkWindow) error {
	window.ID = uuid.New()
	f.created = append(f.created, window)
	f.windows = append(f.windows, window)
	return nil
}

func (f *fakeWindows) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeWindows) Get(ctx context.Context, id uuid.UUID) (*model.WorkWindow, error) {
	for _, w := range f.windows {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, apperrors.NotFound("work window", nil)
}

func (f *fakeWindows) ListForStaff(ctx context.Context, staffID uuid.UUID) ([]*model.WorkWindow, error) {
	var out []*model.WorkWindow
	for _, w := range f.windows {
		if w.StaffID == staffID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindows) ListForStaffOnDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*model.WorkWindow, error) {
	var out []*model.WorkWindow
	for _, w := range f.windows {
		if w.StaffID == staffID && w.AppliesTo(date) {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeStaff struct {
	members map[uuid.UUID]*model.StaffMember
}

func (f *fakeStaff) Create(ctx context.Context, staff *model.StaffMember) error { return nil }

func (f *fakeStaff) Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
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

func staffFor(tenantID uuid.UUID) (*fakeStaff, uuid.UUID) {
	id := uuid.New()
	return &fakeStaff{members: map[uuid.UUID]*model.StaffMember{
		id: {Base: model.Base{ID: id}, TenantID: tenantID, Name: "Alice", Bookable: true},
	}}, id
}

func date(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func window(staffID uuid.UUID, startDate, endDate, startTime, endTime string) *model.WorkWindow {
	return &model.WorkWindow{
		Base:      model.Base{ID: uuid.New()},
		StaffID:   staffID,
		StartDate: date(startDate),
		EndDate:   date(endDate),
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func TestWorkingIntervals(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	repo := &fakeWindows{windows: []*model.WorkWindow{
		window(staffID, "2026-03-01", "2026-03-31", "09:00", "12:00"),
		window(staffID, "2026-03-01", "2026-03-31", "13:00", "17:00"),
		window(staffID, "2026-04-01", "2026-04-30", "10:00", "14:00"),
	}}

	s := NewService(repo, staff, testLogger)

	intervals, err := s.WorkingIntervals(context.Background(), staffID, date("2026-03-10"))
	require.NoError(t, err)

	want := []model.Interval{
		{Start: 540, End: 720},
		{Start: 780, End: 1020},
	}
	assert.Equal(t, want, intervals)
}

func TestWorkingIntervalsNoWindow(t *testing.T) {
	staff, staffID := staffFor(uuid.New())
	s := NewService(&fakeWindows{}, staff, testLogger)

	intervals, err := s.WorkingIntervals(context.Background(), staffID, date("2026-03-10"))
	require.NoError(t, err)
	assert.Empty(t, intervals, "no applicable window means unavailable, not an error")
}

func TestWorkingIntervalsMalformedData(t *testing.T) {
	staff, staffID := staffFor(uuid.New())
	repo := &fakeWindows{windows: []*model.WorkWindow{
		window(staffID, "2026-03-01", "2026-03-31", "garbage", "17:00"),
	}}

	s := NewService(repo, staff, testLogger)

	_, err := s.WorkingIntervals(context.Background(), staffID, date("2026-03-10"))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "schedule_data", appErr.Reason)
}

func TestWorkingIntervalsInvertedTimes(t *testing.T) {
	staff, staffID := staffFor(uuid.New())
	repo := &fakeWindows{windows: []*model.WorkWindow{
		window(staffID, "2026-03-01", "2026-03-31", "17:00", "09:00"),
	}}

	s := NewService(repo, staff, testLogger)

	_, err := s.WorkingIntervals(context.Background(), staffID, date("2026-03-10"))
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "schedule_data", appErr.Reason)
}

func TestCreateWindow(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	repo := &fakeWindows{}
	s := NewService(repo, staff, testLogger)

	created, err := s.CreateWindow(context.Background(), tenantID, staffID, &model.CreateWorkWindowRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, staffID, created.StaffID)
	require.Len(t, repo.created, 1)
}

func TestCreateWindowUntilMidnight(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	repo := &fakeWindows{}
	s := NewService(repo, staff, testLogger)

	// An evening shift ending exactly at midnight is a valid window.
	created, err := s.CreateWindow(context.Background(), tenantID, staffID, &model.CreateWorkWindowRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		StartTime: "16:00",
		EndTime:   "24:00",
	})
	require.NoError(t, err)

	iv, err := created.Interval()
	require.NoError(t, err)
	assert.Equal(t, model.TimeOfDay(model.MinutesPerDay), iv.End)
}

func TestCreateWindowForeignStaff(t *testing.T) {
	staff, staffID := staffFor(uuid.New())
	repo := &fakeWindows{}
	s := NewService(repo, staff, testLogger)

	// A staff member of another tenant reads as not found, nothing is stored.
	_, err := s.CreateWindow(context.Background(), uuid.New(), staffID, &model.CreateWorkWindowRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestCreateWindowRejectsOverlap(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	repo := &fakeWindows{windows: []*model.WorkWindow{
		window(staffID, "2026-03-01", "2026-03-31", "09:00", "13:00"),
	}}
	s := NewService(repo, staff, testLogger)

	_, err := s.CreateWindow(context.Background(), tenantID, staffID, &model.CreateWorkWindowRequest{
		StartDate: "2026-03-15",
		EndDate:   "2026-04-15",
		StartTime: "12:00",
		EndTime:   "18:00",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "schedule_conflict", appErr.Reason)
}

func TestCreateWindowAllowsDisjointDates(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	repo := &fakeWindows{windows: []*model.WorkWindow{
		window(staffID, "2026-03-01", "2026-03-31", "09:00", "13:00"),
	}}
	s := NewService(repo, staff, testLogger)

	// Same daily times, different months: no conflict.
	_, err := s.CreateWindow(context.Background(), tenantID, staffID, &model.CreateWorkWindowRequest{
		StartDate: "2026-04-01",
		EndDate:   "2026-04-30",
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	assert.NoError(t, err)
}

func TestCreateWindowAllowsAdjacentTimes(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	repo := &fakeWindows{windows: []*model.WorkWindow{
		window(staffID, "2026-03-01", "2026-03-31", "09:00", "13:00"),
	}}
	s := NewService(repo, staff, testLogger)

	// Afternoon shift starting exactly where the morning ends.
	_, err := s.CreateWindow(context.Background(), tenantID, staffID, &model.CreateWorkWindowRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		StartTime: "13:00",
		EndTime:   "17:00",
	})
	assert.NoError(t, err)
}

func TestCreateWindowInvalidInput(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	s := NewService(&fakeWindows{}, staff, testLogger)
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.CreateWorkWindowRequest
	}{
		{"bad start date", model.CreateWorkWindowRequest{StartDate: "bad", EndDate: "2026-03-31", StartTime: "09:00", EndTime: "17:00"}},
		{"end before start date", model.CreateWorkWindowRequest{StartDate: "2026-03-31", EndDate: "2026-03-01", StartTime: "09:00", EndTime: "17:00"}},
		{"bad start time", model.CreateWorkWindowRequest{StartDate: "2026-03-01", EndDate: "2026-03-31", StartTime: "9am", EndTime: "17:00"}},
		{"inverted times", model.CreateWorkWindowRequest{StartDate: "2026-03-01", EndDate: "2026-03-31", StartTime: "17:00", EndTime: "09:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateWindow(ctx, tenantID, staffID, &tc.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestListWindowsForeignStaff(t *testing.T) {
	staff, staffID := staffFor(uuid.New())
	s := NewService(&fakeWindows{}, staff, testLogger)

	_, err := s.ListWindows(context.Background(), uuid.New(), staffID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestDeleteWindowForeignTenant(t *testing.T) {
	staff, staffID := staffFor(uuid.New())
	w := window(staffID, "2026-03-01", "2026-03-31", "09:00", "17:00")
	repo := &fakeWindows{windows: []*model.WorkWindow{w}}
	s := NewService(repo, staff, testLogger)

	err := s.DeleteWindow(context.Background(), uuid.New(), w.ID)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Empty(t, repo.deleted, "a foreign window must never be deleted")
}

func TestDeleteWindow(t *testing.T) {
	tenantID := uuid.New()
	staff, staffID := staffFor(tenantID)
	w := window(staffID, "2026-03-01", "2026-03-31", "09:00", "17:00")
	repo := &fakeWindows{windows: []*model.WorkWindow{w}}
	s := NewService(repo, staff, testLogger)

	require.NoError(t, s.DeleteWindow(context.Background(), tenantID, w.ID))
	assert.Equal(t, []uuid.UUID{w.ID}, repo.deleted)
}
