package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// FindOrCreate looks a customer up by (tenant, email) and inserts one when
// absent. ON CONFLICT handles the race where two bookings create the same
// customer concurrently.
func (r *customerRepository) FindOrCreate(ctx context.Context, tenantID uuid.UUID, name, email string, phone *string) (*model.Customer, error) {
	query := `
		INSERT INTO customers (id, tenant_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, email) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id, tenant_id, name, email, phone, created_at, updated_at
	`
	now := time.Now()
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, uuid.New(), tenantID, name, email, phone, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create customer: %w", translateError(err))
	}
	return &customer, nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var customer model.Customer
	err := r.db.GetContext(ctx, &customer, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("customer", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}
