package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	TenantRepository interface {
		Create(ctx context.Context, tenant *model.Tenant) error
		Get(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
		GetBySlug(ctx context.Context, slug string) (*model.Tenant, error)
	}

	StaffRepository interface {
		Create(ctx context.Context, staff *model.StaffMember) error
		Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error)
		Update(ctx context.Context, staff *model.StaffMember) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, tenantID uuid.UUID) ([]*model.StaffMember, error)
		// ListEligibleForService returns bookable staff assigned to the
		// service, in assignment order. This order is what auto-assignment
		// walks, so it must be stable.
		ListEligibleForService(ctx context.Context, serviceID uuid.UUID) ([]*model.StaffMember, error)
	}

	WorkWindowRepository interface {
		Create(ctx context.Context, window *model.WorkWindow) error
		Delete(ctx context.Context, id uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*model.WorkWindow, error)
		ListForStaff(ctx context.Context, staffID uuid.UUID) ([]*model.WorkWindow, error)
		// ListForStaffOnDate returns windows whose date range covers the date.
		ListForStaffOnDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*model.WorkWindow, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, svc *model.Service, staffIDs []uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, svc *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, tenantID uuid.UUID) ([]*model.Service, error)
		// AssignStaff replaces the service's eligible staff list; slice order
		// becomes the assignment order.
		AssignStaff(ctx context.Context, serviceID uuid.UUID, staffIDs []uuid.UUID) error
	}

	AppointmentRepository interface {
		// CreateExclusive inserts the appointment inside a transaction that
		// re-reads the staff member's booked intervals for the date and
		// re-checks overlap before writing. Overlapping concurrent commits
		// cannot both succeed; the loser gets a slot-unavailable error.
		CreateExclusive(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error
		List(ctx context.Context, tenantID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// ListBookedIntervals is the booking index: ordered non-cancelled
		// intervals for a staff member on a date.
		ListBookedIntervals(ctx context.Context, staffID uuid.UUID, date time.Time) ([]model.Interval, error)
	}

	CustomerRepository interface {
		// FindOrCreate deduplicates by (tenant, email).
		FindOrCreate(ctx context.Context, tenantID uuid.UUID, name, email string, phone *string) (*model.Customer, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkEventProcessed(ctx context.Context, id uuid.UUID) error
		MarkEventFailed(ctx context.Context, id uuid.UUID, errorMessage string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
