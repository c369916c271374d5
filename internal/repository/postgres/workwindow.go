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

func (r *workWindowRepository) Create(ctx context.Context, window *model.WorkWindow) error {
	query := `
		INSERT INTO work_windows (id, staff_id, start_date, end_date, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	window.ID = uuid.New()
	window.CreatedAt = time.Now()
	window.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		window.ID,
		window.StaffID,
		window.StartDate,
		window.EndDate,
		window.StartTime,
		window.EndTime,
		window.CreatedAt,
		window.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create work window: %w", translateError(err))
	}
	return nil
}

func (r *workWindowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM work_windows WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("work window", nil)
	}
	return nil
}

func (r *workWindowRepository) Get(ctx context.Context, id uuid.UUID) (*model.WorkWindow, error) {
	query := `
		SELECT id, staff_id, start_date, end_date, start_time, end_time, created_at, updated_at
		FROM work_windows
		WHERE id = $1
	`
	var window model.WorkWindow
	err := r.db.GetContext(ctx, &window, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("work window", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &window, nil
}

func (r *workWindowRepository) ListForStaff(ctx context.Context, staffID uuid.UUID) ([]*model.WorkWindow, error) {
	query := `
		SELECT id, staff_id, start_date, end_date, start_time, end_time, created_at, updated_at
		FROM work_windows
		WHERE staff_id = $1
		ORDER BY start_date ASC, start_time ASC
	`
	var windows []*model.WorkWindow
	if err := r.db.SelectContext(ctx, &windows, query, staffID); err != nil {
		return nil, translateError(err)
	}
	return windows, nil
}

func (r *workWindowRepository) ListForStaffOnDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*model.WorkWindow, error) {
	query := `
		SELECT id, staff_id, start_date, end_date, start_time, end_time, created_at, updated_at
		FROM work_windows
		WHERE staff_id = $1
		AND start_date <= $2
		AND end_date >= $2
		ORDER BY start_time ASC
	`
	var windows []*model.WorkWindow
	if err := r.db.SelectContext(ctx, &windows, query, staffID, date); err != nil {
		return nil, translateError(err)
	}
	return windows, nil
}
