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

func (r *staffRepository) Create(ctx context.Context, staff *model.StaffMember) error {
	query := `
		INSERT INTO staff_members (id, tenant_id, name, email, bookable, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	staff.ID = uuid.New()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		staff.ID,
		staff.TenantID,
		staff.Name,
		staff.Email,
		staff.Bookable,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff member: %w", translateError(err))
	}
	return nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	query := `
		SELECT id, tenant_id, name, email, bookable, created_at, updated_at
		FROM staff_members
		WHERE id = $1
	`
	var staff model.StaffMember
	err := r.db.GetContext(ctx, &staff, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("staff member", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *model.StaffMember) error {
	query := `
		UPDATE staff_members
		SET name = $1, email = $2, bookable = $3, updated_at = $4
		WHERE id = $5
	`
	staff.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		staff.Name,
		staff.Email,
		staff.Bookable,
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return translateError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff member", nil)
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff member", nil)
	}
	return nil
}

func (r *staffRepository) List(ctx context.Context, tenantID uuid.UUID) ([]*model.StaffMember, error) {
	query := `
		SELECT id, tenant_id, name, email, bookable, created_at, updated_at
		FROM staff_members
		WHERE tenant_id = $1
		ORDER BY name ASC
	`
	var staff []*model.StaffMember
	if err := r.db.SelectContext(ctx, &staff, query, tenantID); err != nil {
		return nil, translateError(err)
	}
	return staff, nil
}

func (r *staffRepository) ListEligibleForService(ctx context.Context, serviceID uuid.UUID) ([]*model.StaffMember, error) {
	query := `
		SELECT s.id, s.tenant_id, s.name, s.email, s.bookable, s.created_at, s.updated_at
		FROM staff_members s
		JOIN service_staff ss ON ss.staff_id = s.id
		WHERE ss.service_id = $1
		AND s.bookable = true
		ORDER BY ss.position ASC
	`
	var staff []*model.StaffMember
	if err := r.db.SelectContext(ctx, &staff, query, serviceID); err != nil {
		return nil, translateError(err)
	}
	return staff, nil
}
