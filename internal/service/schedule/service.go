package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

// Service expands stored work windows into concrete working intervals and
// owns the write path for staff schedules. Window creation reuses the same
// overlap primitive the slot generator uses, so a self-conflicting schedule
// can never be stored. Window writes are scoped to the staff member's tenant;
// a foreign staff member reads as not found.
type Service struct {
	repo   repository.WorkWindowRepository
	staff  repository.StaffRepository
	logger *logger.Logger
}

func NewService(repo repository.WorkWindowRepository, staff repository.StaffRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, staff: staff, logger: logger}
}

// WorkingIntervals returns the staff member's working intervals for the date,
// unmerged and ordered by start time. A staff member with no applicable
// window yields an empty slice: unavailable that day.
func (s *Service) WorkingIntervals(ctx context.Context, staffID uuid.UUID, date time.Time) ([]model.Interval, error) {
	windows, err := s.repo.ListForStaffOnDate(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load work windows: %w", err)
	}

	intervals := make([]model.Interval, 0, len(windows))
	for _, w := range windows {
		iv, err := w.Interval()
		if err != nil {
			return nil, apperrors.ScheduleData(staffID.String(), err)
		}
		if !iv.Valid() {
			return nil, apperrors.ScheduleData(staffID.String(), fmt.Errorf("window %s has start >= end", w.ID))
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// CreateWindow validates and stores a new work window. Overlap with an
// existing window of the same staff member on any shared date is rejected.
func (s *Service) CreateWindow(ctx context.Context, tenantID, staffID uuid.UUID, req *model.CreateWorkWindowRequest) (*model.WorkWindow, error) {
	if err := s.verifyStaffTenant(ctx, tenantID, staffID); err != nil {
		return nil, err
	}

	startDate, err := model.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid start_date", err)
	}
	endDate, err := model.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid end_date", err)
	}
	if endDate.Before(startDate) {
		return nil, apperrors.InvalidInput("end_date before start_date", nil)
	}

	window := &model.WorkWindow{
		StaffID:   staffID,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	iv, err := window.Interval()
	if err != nil {
		return nil, apperrors.InvalidInput("invalid daily times", err)
	}
	if !iv.Valid() {
		return nil, apperrors.InvalidInput("start_time must be before end_time", nil)
	}

	existing, err := s.repo.ListForStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing windows: %w", err)
	}
	for _, other := range existing {
		if !dateRangesIntersect(window, other) {
			continue
		}
		otherIv, err := other.Interval()
		if err != nil {
			// Malformed rows cannot be compared; creation still proceeds for
			// valid input, the bad row is surfaced on the read path.
			s.logger.Error(err, "skipping malformed work window during overlap check",
				"window_id", other.ID.String())
			continue
		}
		if iv.Overlaps(otherIv) {
			return nil, apperrors.ScheduleConflict(fmt.Sprintf(
				"window %s-%s overlaps existing window %s-%s",
				iv.Start, iv.End, otherIv.Start, otherIv.End,
			))
		}
	}

	if err := s.repo.Create(ctx, window); err != nil {
		return nil, fmt.Errorf("failed to create work window: %w", err)
	}
	return window, nil
}

func (s *Service) DeleteWindow(ctx context.Context, tenantID, id uuid.UUID) error {
	window, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.verifyStaffTenant(ctx, tenantID, window.StaffID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListWindows(ctx context.Context, tenantID, staffID uuid.UUID) ([]*model.WorkWindow, error) {
	if err := s.verifyStaffTenant(ctx, tenantID, staffID); err != nil {
		return nil, err
	}
	return s.repo.ListForStaff(ctx, staffID)
}

func (s *Service) verifyStaffTenant(ctx context.Context, tenantID, staffID uuid.UUID) error {
	member, err := s.staff.Get(ctx, staffID)
	if err != nil {
		return err
	}
	if member.TenantID != tenantID {
		return apperrors.NotFound("staff member", nil)
	}
	return nil
}

func dateRangesIntersect(a, b *model.WorkWindow) bool {
	return !a.StartDate.After(b.EndDate) && !a.EndDate.Before(b.StartDate)
}
