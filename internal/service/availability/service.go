package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/metrics"
)

// CatalogReader provides the service and eligible-staff lookups the
// availability pipeline needs. The catalog service satisfies it with a cached
// implementation.
type CatalogReader interface {
	GetService(ctx context.Context, tenantID, id uuid.UUID) (*model.Service, error)
	EligibleStaff(ctx context.Context, serviceID uuid.UUID) ([]*model.StaffMember, error)
}

// ScheduleExpander turns stored work windows into working intervals.
type ScheduleExpander interface {
	WorkingIntervals(ctx context.Context, staffID uuid.UUID, date time.Time) ([]model.Interval, error)
}

// BookingIndex reads the committed, non-cancelled intervals for a staff/date.
type BookingIndex interface {
	ListBookedIntervals(ctx context.Context, staffID uuid.UUID, date time.Time) ([]model.Interval, error)
}

// Service answers "what times are bookable" and "who is free at time T". Both
// are pure reads: a returned slot is a hint, not a reservation, and the
// booking committer re-validates under the exclusion guarantee.
type Service struct {
	catalog  CatalogReader
	schedule ScheduleExpander
	index    BookingIndex
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(catalog CatalogReader, schedule ScheduleExpander, index BookingIndex, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		catalog:  catalog,
		schedule: schedule,
		index:    index,
		logger:   logger,
		metrics:  metrics,
	}
}

// ComputeAvailableSlots returns the bookable start times for a service on a
// date. With a staff filter only that member's pipeline runs; without one the
// result is the union of distinct start times over all eligible staff. Zero
// eligible staff is a valid empty result, not an error.
func (s *Service) ComputeAvailableSlots(ctx context.Context, tenantID, serviceID uuid.UUID, date time.Time, staffID *uuid.UUID) ([]model.TimeOfDay, error) {
	s.metrics.AvailabilityRequests.Inc()
	timer := prometheus.NewTimer(s.metrics.AvailabilityLatency)
	defer timer.ObserveDuration()

	svc, err := s.catalog.GetService(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, nil
	}

	eligible, err := s.catalog.EligibleStaff(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible staff: %w", err)
	}

	if staffID != nil {
		member := findStaff(eligible, *staffID)
		if member == nil {
			return nil, apperrors.InvalidInput("staff member not eligible for service", nil)
		}
		return s.slotsForStaff(ctx, member, svc, date)
	}

	union := make(map[model.TimeOfDay]struct{})
	for _, member := range eligible {
		memberSlots, err := s.slotsForStaff(ctx, member, svc, date)
		if err != nil {
			return nil, err
		}
		for _, slot := range memberSlots {
			union[slot] = struct{}{}
		}
	}

	slots := make([]model.TimeOfDay, 0, len(union))
	for slot := range union {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots, nil
}

// FindAvailableStaff returns the first eligible staff member free for the
// whole [start, start+duration) interval, walking the service's assignment
// order. Returns nil when nobody is free.
func (s *Service) FindAvailableStaff(ctx context.Context, tenantID, serviceID uuid.UUID, date time.Time, start model.TimeOfDay) (*model.StaffMember, error) {
	svc, err := s.catalog.GetService(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, nil
	}

	eligible, err := s.catalog.EligibleStaff(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible staff: %w", err)
	}

	requested := model.Interval{Start: start, End: start.Add(svc.DurationMinutes)}
	for _, member := range eligible {
		free, err := s.staffFree(ctx, member.ID, date, requested)
		if err != nil {
			if s.skipScheduleError(err, member.ID) {
				continue
			}
			return nil, err
		}
		if free {
			return member, nil
		}
	}
	return nil, nil
}

// IsStaffFree re-checks a specific staff member against the requested
// interval. The booking committer uses it to confirm a caller-supplied staff
// choice before attempting the exclusive insert.
func (s *Service) IsStaffFree(ctx context.Context, staffID uuid.UUID, date time.Time, interval model.Interval) (bool, error) {
	return s.staffFree(ctx, staffID, date, interval)
}

func (s *Service) staffFree(ctx context.Context, staffID uuid.UUID, date time.Time, requested model.Interval) (bool, error) {
	working, err := s.schedule.WorkingIntervals(ctx, staffID, date)
	if err != nil {
		return false, err
	}

	inWindow := false
	for _, w := range working {
		if w.Contains(requested) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return false, nil
	}

	booked, err := s.index.ListBookedIntervals(ctx, staffID, date)
	if err != nil {
		return false, err
	}
	for _, b := range booked {
		if requested.Overlaps(b) {
			return false, nil
		}
	}
	return true, nil
}

// slotsForStaff runs the expander, booking index and slot generator for one
// staff member. Malformed schedule data excludes only this member; any other
// failure aborts the computation, an unreadable index must never look like a
// day with no availability.
func (s *Service) slotsForStaff(ctx context.Context, member *model.StaffMember, svc *model.Service, date time.Time) ([]model.TimeOfDay, error) {
	working, err := s.schedule.WorkingIntervals(ctx, member.ID, date)
	if err != nil {
		if s.skipScheduleError(err, member.ID) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to expand schedule for staff %s: %w", member.ID, err)
	}
	if len(working) == 0 {
		return nil, nil
	}

	booked, err := s.index.ListBookedIntervals(ctx, member.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read booking index for staff %s: %w", member.ID, err)
	}

	step := svc.SlotInterval
	if step <= 0 {
		step = DefaultSlotInterval
	}

	var slots []model.TimeOfDay
	for _, w := range working {
		slots = append(slots, GenerateSlots(w, booked, svc.DurationMinutes, step)...)
	}
	return slots, nil
}

func (s *Service) skipScheduleError(err error, staffID uuid.UUID) bool {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Reason != "schedule_data" {
		return false
	}
	s.metrics.ScheduleDataErrors.Inc()
	s.logger.Error(err, "excluding staff member with malformed schedule data",
		"staff_id", staffID.String())
	return true
}

func findStaff(staff []*model.StaffMember, id uuid.UUID) *model.StaffMember {
	for _, member := range staff {
		if member.ID == id {
			return member
		}
	}
	return nil
}
