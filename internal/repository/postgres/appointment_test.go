package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func testAppointment() *model.Appointment {
	staffID := uuid.New()
	return &model.Appointment{
		TenantID:      uuid.New(),
		ServiceID:     uuid.New(),
		StaffID:       &staffID,
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     630, // 10:30
		EndTime:       660, // 11:00
		Status:        model.AppointmentStatusBooked,
		CustomerName:  "Pat Doe",
		CustomerEmail: "pat@example.com",
	}
}

func TestCreateExclusiveCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	apt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT start_minute, end_minute").
		WithArgs(*apt.StaffID, apt.Date).
		WillReturnRows(sqlmock.NewRows([]string{"start_minute", "end_minute"}).
			AddRow(540, 600)) // 09:00-10:00, no overlap with 10:30
	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateExclusive(context.Background(), apt)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExclusiveDetectsOverlapBeforeInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	apt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT start_minute, end_minute").
		WithArgs(*apt.StaffID, apt.Date).
		WillReturnRows(sqlmock.NewRows([]string{"start_minute", "end_minute"}).
			AddRow(600, 645)) // 10:00-10:45 overlaps 10:30-11:00
	mock.ExpectRollback()

	err := repo.CreateExclusive(context.Background(), apt)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "slot_unavailable", appErr.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExclusiveTranslatesExclusionViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	apt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT start_minute, end_minute").
		WithArgs(*apt.StaffID, apt.Date).
		WillReturnRows(sqlmock.NewRows([]string{"start_minute", "end_minute"}))
	// The schema-level constraint fires for writes that raced past the lock.
	mock.ExpectExec("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23P01"})
	mock.ExpectRollback()

	err := repo.CreateExclusive(context.Background(), apt)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "slot_unavailable", appErr.Reason)
	assert.False(t, appErr.Retryable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExclusiveTranslatesSerializationFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	apt := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT start_minute, end_minute").
		WithArgs(*apt.StaffID, apt.Date).
		WillReturnRows(sqlmock.NewRows([]string{"start_minute", "end_minute"}))
	mock.ExpectExec("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	err := repo.CreateExclusive(context.Background(), apt)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "persistence_unavailable", appErr.Reason)
	assert.True(t, appErr.Retryable())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExclusiveRequiresStaff(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewAppointmentRepository(db)

	apt := testAppointment()
	apt.StaffID = nil

	err := repo.CreateExclusive(context.Background(), apt)
	assert.Error(t, err)
}

func TestListBookedIntervals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	staffID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT start_minute, end_minute").
		WithArgs(staffID, date).
		WillReturnRows(sqlmock.NewRows([]string{"start_minute", "end_minute"}).
			AddRow(540, 600).
			AddRow(780, 840))

	intervals, err := repo.ListBookedIntervals(context.Background(), staffID, date)
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{
		{Start: 540, End: 600},
		{Start: 780, End: 840},
	}, intervals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), id, model.AppointmentStatusCancelled, nil)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
