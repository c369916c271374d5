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

const appointmentColumns = `
	id, tenant_id, service_id, staff_id, customer_id, date,
	start_minute, end_minute, status, customer_name, customer_email,
	customer_phone, notes, cancel_reason, created_at, updated_at
`

// CreateExclusive inserts the appointment under the no-double-booking
// guarantee. The transaction locks the staff member's non-cancelled rows for
// the date, re-checks overlap in application code, and inserts; the
// appointments_no_overlap exclusion constraint backs the same rule at the
// schema level, so even a path that skips this method cannot violate it.
func (r *appointmentRepository) CreateExclusive(ctx context.Context, appointment *model.Appointment) error {
	if appointment.StaffID == nil {
		return fmt.Errorf("appointment staff_id must be resolved before commit")
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback()

	lockQuery := `
		SELECT start_minute, end_minute
		FROM appointments
		WHERE staff_id = $1
		AND date = $2
		AND status != 'cancelled'
		ORDER BY start_minute ASC
		FOR UPDATE
	`
	var existing []model.Interval
	rows, err := tx.QueryxContext(ctx, lockQuery, *appointment.StaffID, appointment.Date)
	if err != nil {
		return translateError(err)
	}
	for rows.Next() {
		var iv model.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			rows.Close()
			return translateError(err)
		}
		existing = append(existing, iv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return translateError(err)
	}

	requested := appointment.Interval()
	for _, iv := range existing {
		if requested.Overlaps(iv) {
			return apperrors.SlotUnavailable(fmt.Errorf("interval %s-%s already booked", iv.Start, iv.End))
		}
	}

	insertQuery := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err = tx.ExecContext(ctx, insertQuery,
		appointment.ID,
		appointment.TenantID,
		appointment.ServiceID,
		appointment.StaffID,
		appointment.CustomerID,
		appointment.Date,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.CustomerName,
		appointment.CustomerEmail,
		appointment.CustomerPhone,
		appointment.Notes,
		appointment.CancelReason,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, cancelReason *string) error {
	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, cancelReason, time.Now(), id)
	if err != nil {
		return translateError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, tenantID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	argCount := 2

	if filters != nil {
		if filters.StaffID != nil {
			query += fmt.Sprintf(" AND staff_id = $%d", argCount)
			args = append(args, *filters.StaffID)
			argCount++
		}
		if filters.ServiceID != nil {
			query += fmt.Sprintf(" AND service_id = $%d", argCount)
			args = append(args, *filters.ServiceID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if !filters.StartDate.IsZero() {
			query += fmt.Sprintf(" AND date >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if !filters.EndDate.IsZero() {
			query += fmt.Sprintf(" AND date <= $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY date ASC, start_minute ASC"

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	return appointments, nil
}

// ListBookedIntervals is the booking index read path: the exclusion set the
// slot generator works against. Cancelled appointments free their interval.
func (r *appointmentRepository) ListBookedIntervals(ctx context.Context, staffID uuid.UUID, date time.Time) ([]model.Interval, error) {
	query := `
		SELECT start_minute, end_minute
		FROM appointments
		WHERE staff_id = $1
		AND date = $2
		AND status != 'cancelled'
		ORDER BY start_minute ASC
	`
	rows, err := r.db.QueryxContext(ctx, query, staffID, date)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var intervals []model.Interval
	for rows.Next() {
		var iv model.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, translateError(err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return intervals, nil
}
