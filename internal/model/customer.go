package model

import (
	"github.com/google/uuid"
)

// Customer is a person who has booked with a tenant, deduplicated by email.
// Linking an appointment to a customer record is an enrichment; bookings
// succeed even when the lookup fails.
type Customer struct {
	Base
	TenantID uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name     string    `db:"name" json:"name"`
	Email    string    `db:"email" json:"email"`
	Phone    *string   `db:"phone" json:"phone,omitempty"`
}
