package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/internal/service/availability"
	"github.com/jwalitptl/booking-api/internal/service/event"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
	"github.com/jwalitptl/booking-api/pkg/logger"
	"github.com/jwalitptl/booking-api/pkg/metrics"
)

// AvailabilityChecker is the slice of the availability service the committer
// needs for its re-validation step.
type AvailabilityChecker interface {
	FindAvailableStaff(ctx context.Context, tenantID, serviceID uuid.UUID, date time.Time, start model.TimeOfDay) (*model.StaffMember, error)
	IsStaffFree(ctx context.Context, staffID uuid.UUID, date time.Time, interval model.Interval) (bool, error)
}

// Service is the transactional boundary of the booking flow. Every booking
// entry point (public page, dashboard, reschedule) commits through Book, so
// the availability math is derived in exactly one place and the insert always
// runs under the persistence layer's exclusion guarantee.
type Service struct {
	catalog      availability.CatalogReader
	checker      AvailabilityChecker
	appointments repository.AppointmentRepository
	customers    repository.CustomerRepository
	events       *event.Service
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(
	catalog availability.CatalogReader,
	checker AvailabilityChecker,
	appointments repository.AppointmentRepository,
	customers repository.CustomerRepository,
	events *event.Service,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	return &Service{
		catalog:      catalog,
		checker:      checker,
		appointments: appointments,
		customers:    customers,
		events:       events,
		logger:       logger,
		metrics:      metrics,
	}
}

// Book runs one booking attempt: validate the request, resolve a staff
// member, then insert under the exclusion guarantee. Losing a race surfaces
// as a slot-unavailable rejection; the committer never retries with a
// different slot on the caller's behalf.
func (s *Service) Book(ctx context.Context, tenantID uuid.UUID, req *model.BookingRequest) (*model.Appointment, error) {
	timer := prometheus.NewTimer(s.metrics.BookingLatency)
	defer timer.ObserveDuration()

	apt, err := s.book(ctx, tenantID, req)
	if err != nil {
		s.metrics.BookingsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}
	s.metrics.BookingsCommitted.Inc()
	return apt, nil
}

func (s *Service) book(ctx context.Context, tenantID uuid.UUID, req *model.BookingRequest) (*model.Appointment, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid service_id", err)
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid date", err)
	}
	start, err := model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid start_time", err)
	}

	svc, err := s.catalog.GetService(ctx, tenantID, serviceID)
	if err != nil {
		if appErr, ok := apperrors.As(err); ok && appErr.Code == apperrors.ErrNotFound {
			return nil, apperrors.InvalidInput("unknown service", err)
		}
		return nil, err
	}
	if !svc.Active {
		return nil, apperrors.InvalidInput("unknown service", nil)
	}
	if svc.DurationMinutes <= 0 {
		return nil, apperrors.InvalidInput("service has no duration", nil)
	}

	interval := model.Interval{Start: start, End: start.Add(svc.DurationMinutes)}
	if !interval.Valid() {
		return nil, apperrors.InvalidInput("start_time out of range", nil)
	}

	staff, err := s.resolveStaff(ctx, tenantID, serviceID, date, interval, req.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperrors.SlotUnavailable(fmt.Errorf("no staff available for requested time"))
	}

	apt := &model.Appointment{
		TenantID:      tenantID,
		ServiceID:     serviceID,
		StaffID:       &staff.ID,
		Date:          date,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		Status:        model.AppointmentStatusBooked,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}

	// Customer linkage is best-effort: a failed lookup must not block the
	// commit, the raw contact fields are kept on the appointment either way.
	if customer, err := s.customers.FindOrCreate(ctx, tenantID, req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
		s.logger.Error(err, "customer find-or-create failed, committing without linkage",
			"email", req.CustomerEmail)
	} else {
		apt.CustomerID = &customer.ID
	}

	if err := s.appointments.CreateExclusive(ctx, apt); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, tenantID, model.EventAppointmentBooked, apt)
	return apt, nil
}

// resolveStaff picks the staff member who will fulfill the booking. A
// caller-supplied choice is re-confirmed against the live schedule and
// booking index; with no preference the first free eligible member wins.
func (s *Service) resolveStaff(ctx context.Context, tenantID, serviceID uuid.UUID, date time.Time, interval model.Interval, requested *string) (*model.StaffMember, error) {
	if requested == nil {
		return s.checker.FindAvailableStaff(ctx, tenantID, serviceID, date, interval.Start)
	}

	staffID, err := uuid.Parse(*requested)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid staff_id", err)
	}

	eligible, err := s.catalog.EligibleStaff(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible staff: %w", err)
	}
	var member *model.StaffMember
	for _, m := range eligible {
		if m.ID == staffID {
			member = m
			break
		}
	}
	if member == nil {
		return nil, apperrors.InvalidInput("staff member not eligible for service", nil)
	}

	free, err := s.checker.IsStaffFree(ctx, staffID, date, interval)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, nil
	}
	return member, nil
}

func rejectionReason(err error) string {
	appErr, ok := apperrors.As(err)
	if !ok {
		return "internal"
	}
	switch {
	case appErr.Reason != "":
		return appErr.Reason
	case appErr.Code == apperrors.ErrBadRequest:
		return "invalid_input"
	default:
		return "internal"
	}
}
