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

func (r *tenantRepository) Create(ctx context.Context, tenant *model.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, slug, timezone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	tenant.ID = uuid.New()
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Slug,
		tenant.Timezone,
		tenant.Status,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", translateError(err))
	}
	return nil
}

func (r *tenantRepository) Get(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	query := `
		SELECT id, name, slug, timezone, status, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	var tenant model.Tenant
	err := r.db.GetContext(ctx, &tenant, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("tenant", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}

func (r *tenantRepository) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	query := `
		SELECT id, name, slug, timezone, status, created_at, updated_at
		FROM tenants
		WHERE slug = $1
	`
	var tenant model.Tenant
	err := r.db.GetContext(ctx, &tenant, query, slug)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("tenant", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}
