package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/internal/service/event"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// Service handles the appointment lifecycle after commit: completion and
// cancellation by tenant staff, plus read access. Creation goes exclusively
// through the booking committer; the core never hard-deletes appointments.
type Service struct {
	repo   repository.AppointmentRepository
	events *event.Service
}

func NewService(repo repository.AppointmentRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

// GetAppointment returns the appointment, scoped to the tenant. An id owned
// by another tenant reads as not found.
func (s *Service) GetAppointment(ctx context.Context, tenantID, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.TenantID != tenantID {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, tenantID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, tenantID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// CancelAppointment moves a booked appointment to cancelled, freeing its
// interval for new bookings. Only the owning tenant may cancel; anyone else
// gets not-found, never a state change.
func (s *Service) CancelAppointment(ctx context.Context, tenantID, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	switch apt.Status {
	case model.AppointmentStatusCancelled:
		return nil, apperrors.BadRequest("appointment is already cancelled", nil)
	case model.AppointmentStatusCompleted:
		return nil, apperrors.BadRequest("cannot cancel a completed appointment", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled, &reason); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancelReason = &reason
	s.events.Emit(ctx, apt.TenantID, model.EventAppointmentCancelled, apt)
	return apt, nil
}

// CompleteAppointment marks a booked appointment as done.
func (s *Service) CompleteAppointment(ctx context.Context, tenantID, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if apt.Status != model.AppointmentStatusBooked {
		return nil, apperrors.BadRequest(fmt.Sprintf("cannot complete appointment in status %s", apt.Status), nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCompleted, nil); err != nil {
		return nil, fmt.Errorf("failed to complete appointment: %w", err)
	}

	apt.Status = model.AppointmentStatusCompleted
	s.events.Emit(ctx, apt.TenantID, model.EventAppointmentCompleted, apt)
	return apt, nil
}
