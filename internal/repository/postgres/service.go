package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service, staffIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO services (id, tenant_id, name, description, duration_minutes, price, slot_interval_minutes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, query,
		svc.ID,
		svc.TenantID,
		svc.Name,
		svc.Description,
		svc.DurationMinutes,
		svc.Price,
		svc.SlotInterval,
		svc.Active,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", translateError(err))
	}

	if err := assignStaffTx(ctx, tx, svc.ID, staffIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, tenant_id, name, description, duration_minutes, price, slot_interval_minutes, active, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var svc model.Service
	err := r.db.GetContext(ctx, &svc, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("service", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3, price = $4,
			slot_interval_minutes = $5, active = $6, updated_at = $7
		WHERE id = $8
	`
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		svc.Name,
		svc.Description,
		svc.DurationMinutes,
		svc.Price,
		svc.SlotInterval,
		svc.Active,
		svc.UpdatedAt,
		svc.ID,
	)
	if err != nil {
		return translateError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context, tenantID uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT id, tenant_id, name, description, duration_minutes, price, slot_interval_minutes, active, created_at, updated_at
		FROM services
		WHERE tenant_id = $1
		ORDER BY name ASC
	`
	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, tenantID); err != nil {
		return nil, translateError(err)
	}
	return services, nil
}

func (r *serviceRepository) AssignStaff(ctx context.Context, serviceID uuid.UUID, staffIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback()

	if err := assignStaffTx(ctx, tx, serviceID, staffIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// assignStaffTx replaces a service's staff assignments. The slice index
// becomes the position column, which fixes the auto-assignment order.
func assignStaffTx(ctx context.Context, tx *sqlx.Tx, serviceID uuid.UUID, staffIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM service_staff WHERE service_id = $1`, serviceID); err != nil {
		return translateError(err)
	}

	for i, staffID := range staffIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO service_staff (service_id, staff_id, position) VALUES ($1, $2, $3)`,
			serviceID, staffID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to assign staff %s: %w", staffID, translateError(err))
		}
	}
	return nil
}
