package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkWindow defines when a staff member can be booked: for every date in
// [StartDate, EndDate] the member works [StartTime, EndTime). Daily times are
// stored as raw "HH:MM" strings and parsed on read; a date with no applicable
// window means the staff member is unavailable that day.
type WorkWindow struct {
	Base
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
}

// AppliesTo reports whether the window covers the given date.
func (w *WorkWindow) AppliesTo(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(w.StartDate.Truncate(24*time.Hour)) && !d.After(w.EndDate.Truncate(24*time.Hour))
}

// Interval parses the stored daily bounds into a working interval.
func (w *WorkWindow) Interval() (Interval, error) {
	start, err := ParseTimeOfDay(w.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseTimeOfDay(w.EndTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

type CreateWorkWindowRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
