package model

import (
	"github.com/google/uuid"
)

// StaffMember is a bookable employee of a tenant. Only bookable staff are
// considered when computing availability for a service.
type StaffMember struct {
	Base
	TenantID uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name     string    `db:"name" json:"name"`
	Email    *string   `db:"email" json:"email,omitempty"`
	Bookable bool      `db:"bookable" json:"bookable"`
}

type CreateStaffRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Bookable *bool   `json:"bookable"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Bookable *bool   `json:"bookable"`
}
