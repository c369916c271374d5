package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
)

func mustTime(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	tod, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestGenerateSlotsFullDay(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "17:00")}
	booked := []model.Interval{
		{Start: mustTime(t, "10:00"), End: mustTime(t, "10:30")},
	}

	slots := GenerateSlots(working, booked, 30, 30)

	// 09:00 through 16:30 at 30-minute steps, minus the booked 10:00.
	require.Len(t, slots, 15)
	assert.Equal(t, mustTime(t, "09:00"), slots[0])
	assert.Equal(t, mustTime(t, "16:30"), slots[len(slots)-1])
	assert.NotContains(t, slots, mustTime(t, "10:00"))
	assert.Contains(t, slots, mustTime(t, "09:30"), "slot ending exactly at booking start is allowed")
	assert.Contains(t, slots, mustTime(t, "10:30"), "slot starting exactly at booking end is allowed")
}

func TestGenerateSlotsLongDuration(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "12:00")}
	booked := []model.Interval{
		{Start: mustTime(t, "10:00"), End: mustTime(t, "10:30")},
	}

	// 90-minute service at 30-minute steps: candidates 09:00..10:30, anything
	// crossing the booking is dropped.
	slots := GenerateSlots(working, booked, 90, 30)
	assert.Equal(t, []model.TimeOfDay{mustTime(t, "10:30")}, slots)
}

func TestGenerateSlotsDurationExceedsWindow(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "10:00")}
	assert.Empty(t, GenerateSlots(working, nil, 90, 30))
}

func TestGenerateSlotsNoBookings(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "11:00")}
	slots := GenerateSlots(working, nil, 60, 15)

	// Candidates every 15 minutes while a full hour still fits.
	want := []model.TimeOfDay{
		mustTime(t, "09:00"), mustTime(t, "09:15"), mustTime(t, "09:30"),
		mustTime(t, "09:45"), mustTime(t, "10:00"),
	}
	assert.Equal(t, want, slots)
}

func TestGenerateSlotsExactFit(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "09:30")}
	slots := GenerateSlots(working, nil, 30, 30)
	assert.Equal(t, []model.TimeOfDay{mustTime(t, "09:00")}, slots)
}

func TestGenerateSlotsIdempotent(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "17:00")}
	booked := []model.Interval{
		{Start: mustTime(t, "11:00"), End: mustTime(t, "12:00")},
		{Start: mustTime(t, "14:30"), End: mustTime(t, "15:00")},
	}

	first := GenerateSlots(working, booked, 45, 15)
	second := GenerateSlots(working, booked, 45, 15)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsInvalidArguments(t *testing.T) {
	working := model.Interval{Start: mustTime(t, "09:00"), End: mustTime(t, "17:00")}
	assert.Nil(t, GenerateSlots(working, nil, 0, 30))
	assert.Nil(t, GenerateSlots(working, nil, 30, 0))
	assert.Nil(t, GenerateSlots(working, nil, -30, -15))
}
