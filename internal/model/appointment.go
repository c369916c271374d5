package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a committed booking. EndTime is derived from the service
// duration exactly once at creation and never patched independently; moving an
// appointment means committing a new interval through the same exclusion
// guarantee as a fresh booking.
type Appointment struct {
	Base
	TenantID      uuid.UUID         `db:"tenant_id" json:"tenant_id"`
	ServiceID     uuid.UUID         `db:"service_id" json:"service_id"`
	StaffID       *uuid.UUID        `db:"staff_id" json:"staff_id"`
	CustomerID    *uuid.UUID        `db:"customer_id" json:"customer_id,omitempty"`
	Date          time.Time         `db:"date" json:"date"`
	StartTime     TimeOfDay         `db:"start_minute" json:"start_time"`
	EndTime       TimeOfDay         `db:"end_minute" json:"end_time"`
	Status        AppointmentStatus `db:"status" json:"status"`
	CustomerName  string            `db:"customer_name" json:"customer_name"`
	CustomerEmail string            `db:"customer_email" json:"customer_email"`
	CustomerPhone *string           `db:"customer_phone" json:"customer_phone,omitempty"`
	Notes         *string           `db:"notes" json:"notes,omitempty"`
	CancelReason  *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// Interval returns the appointment's booked time range.
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

type AppointmentFilters struct {
	StaffID   *uuid.UUID
	ServiceID *uuid.UUID
	Status    AppointmentStatus
	StartDate time.Time
	EndDate   time.Time
}

// BookingRequest is one attempt to commit an appointment. StaffID is optional;
// when absent the committer auto-assigns the first free eligible staff member.
type BookingRequest struct {
	ServiceID     string  `json:"service_id" binding:"required,uuid"`
	Date          string  `json:"date" binding:"required"`
	StartTime     string  `json:"start_time" binding:"required"`
	StaffID       *string `json:"staff_id" binding:"omitempty,uuid"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	CustomerPhone *string `json:"customer_phone"`
	Notes         *string `json:"notes"`
}

// BookingResult is returned to the caller on a committed booking.
type BookingResult struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	StaffID       uuid.UUID `json:"staff_id"`
	Date          string    `json:"date"`
	StartTime     TimeOfDay `json:"start_time"`
	EndTime       TimeOfDay `json:"end_time"`
}
