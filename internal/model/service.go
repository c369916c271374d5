package model

import (
	"github.com/google/uuid"
)

// Service is a tenant-scoped offering customers can book.
type Service struct {
	Base
	TenantID        uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           float64   `db:"price" json:"price"`
	SlotInterval    int       `db:"slot_interval_minutes" json:"slot_interval_minutes"`
	Active          bool      `db:"active" json:"active"`
}

// ServiceStaff links a service to an eligible staff member. Position fixes the
// order auto-assignment walks when the customer has no staff preference.
type ServiceStaff struct {
	ServiceID uuid.UUID `db:"service_id" json:"service_id"`
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	Position  int       `db:"position" json:"position"`
}

type CreateServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64  `json:"price" binding:"gte=0"`
	SlotInterval    int      `json:"slot_interval_minutes" binding:"omitempty,gt=0"`
	StaffIDs        []string `json:"staff_ids"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	SlotInterval    *int     `json:"slot_interval_minutes" binding:"omitempty,gt=0"`
	Active          *bool    `json:"active"`
	StaffIDs        []string `json:"staff_ids"`
}
