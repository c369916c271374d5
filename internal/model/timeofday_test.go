package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"09:00:00", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:00", TimeOfDay(540).String())
	assert.Equal(t, "00:05", TimeOfDay(5).String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
	assert.Equal(t, "24:00", TimeOfDay(1440).String())
}

func TestTimeOfDayMidnightRoundTrip(t *testing.T) {
	// "24:00" is a legal end-of-day bound; a window closing at midnight must
	// survive parse, validity and rendering.
	end, err := ParseTimeOfDay("24:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(MinutesPerDay), end)
	assert.True(t, end.Valid())
	assert.True(t, Interval{Start: 960, End: end}.Valid(), "16:00-24:00 is a valid working interval")
	assert.Equal(t, "24:00", end.String())
}

func TestTimeOfDayJSON(t *testing.T) {
	data, err := json.Marshal(TimeOfDay(630))
	require.NoError(t, err)
	assert.Equal(t, `"10:30"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"14:15"`), &parsed))
	assert.Equal(t, TimeOfDay(855), parsed)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &parsed))
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: 600, End: 660} // 10:00-11:00

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{600, 660}, true},
		{"contained", Interval{615, 645}, true},
		{"straddles start", Interval{570, 630}, true},
		{"straddles end", Interval{630, 690}, true},
		{"touching before", Interval{540, 600}, false},
		{"touching after", Interval{660, 720}, false},
		{"disjoint", Interval{720, 780}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestIntervalContains(t *testing.T) {
	window := Interval{Start: 540, End: 1020} // 09:00-17:00

	assert.True(t, window.Contains(Interval{540, 570}))
	assert.True(t, window.Contains(Interval{990, 1020}))
	assert.True(t, window.Contains(window))
	assert.False(t, window.Contains(Interval{510, 570}))
	assert.False(t, window.Contains(Interval{1000, 1030}))
}

func TestIntervalValid(t *testing.T) {
	assert.True(t, Interval{Start: 540, End: 1020}.Valid())
	assert.False(t, Interval{Start: 600, End: 600}.Valid())
	assert.False(t, Interval{Start: 660, End: 600}.Valid())
	assert.False(t, Interval{Start: -10, End: 600}.Valid())
	assert.False(t, Interval{Start: 1400, End: 1500}.Valid())
}
