package availability

import (
	"github.com/jwalitptl/booking-api/internal/model"
)

// DefaultSlotInterval is the fallback granularity when a service does not
// carry its own.
const DefaultSlotInterval = 30

// GenerateSlots enumerates candidate start times inside one working interval.
// Candidates step from the interval's start at stepMinutes granularity up to
// end - duration. A candidate is accepted when it fits entirely inside the
// working interval and its [start, start+duration) range overlaps no booked
// interval. Overlap is half-open, so a slot starting exactly where a booking
// ends is accepted.
func GenerateSlots(working model.Interval, booked []model.Interval, durationMinutes, stepMinutes int) []model.TimeOfDay {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return nil
	}

	var slots []model.TimeOfDay
	for start := working.Start; start.Add(durationMinutes) <= working.End; start = start.Add(stepMinutes) {
		candidate := model.Interval{Start: start, End: start.Add(durationMinutes)}
		if !working.Contains(candidate) {
			continue
		}
		if overlapsAny(candidate, booked) {
			continue
		}
		slots = append(slots, start)
	}
	return slots
}

func overlapsAny(candidate model.Interval, booked []model.Interval) bool {
	for _, b := range booked {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
