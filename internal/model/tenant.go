package model

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant is a company using the platform. Every service, staff member and
// appointment is scoped to exactly one tenant.
type Tenant struct {
	Base
	Name     string       `db:"name" json:"name"`
	Slug     string       `db:"slug" json:"slug"`
	Timezone string       `db:"timezone" json:"timezone"`
	Status   TenantStatus `db:"status" json:"status"`
}
