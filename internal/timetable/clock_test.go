package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Clock
		wantErr bool
	}{
		{name: "hours and minutes", input: "08:30", want: 8*60 + 30},
		{name: "with seconds", input: "14:00:00", want: 14 * 60},
		{name: "midnight", input: "00:00", want: 0},
		{name: "padded whitespace", input: " 09:15 ", want: 9*60 + 15},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "not a time", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockString(t *testing.T) {
	c, err := ParseClock("08:05")
	require.NoError(t, err)
	assert.Equal(t, "08:05:00", c.String())
	assert.Equal(t, "08:05", c.Short())
}

func TestIntervalOverlaps(t *testing.T) {
	morning := Interval{Start: 8 * 60, End: 10 * 60}
	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "identical", other: Interval{Start: 8 * 60, End: 10 * 60}, want: true},
		{name: "partial", other: Interval{Start: 9 * 60, End: 11 * 60}, want: true},
		{name: "contained", other: Interval{Start: 8*60 + 30, End: 9 * 60}, want: true},
		{name: "touching end", other: Interval{Start: 10 * 60, End: 12 * 60}, want: false},
		{name: "touching start", other: Interval{Start: 6 * 60, End: 8 * 60}, want: false},
		{name: "disjoint", other: Interval{Start: 14 * 60, End: 16 * 60}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, morning.Overlaps(tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(morning))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	outer := Interval{Start: 8 * 60, End: 12 * 60}
	assert.True(t, outer.Contains(Interval{Start: 8 * 60, End: 12 * 60}))
	assert.True(t, outer.Contains(Interval{Start: 9 * 60, End: 10 * 60}))
	assert.False(t, outer.Contains(Interval{Start: 7 * 60, End: 9 * 60}))
	assert.False(t, outer.Contains(Interval{Start: 11 * 60, End: 13 * 60}))

	inner := Interval{Start: 9 * 60, End: 10 * 60}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name    string
		start   Clock
		end     Clock
		instant Clock
		want    bool
	}{
		{name: "inside plain range", start: 8 * 60, end: 12 * 60, instant: 10 * 60, want: true},
		{name: "at start inclusive", start: 8 * 60, end: 12 * 60, instant: 8 * 60, want: true},
		{name: "at end exclusive", start: 8 * 60, end: 12 * 60, instant: 12 * 60, want: false},
		{name: "before plain range", start: 8 * 60, end: 12 * 60, instant: 7 * 60, want: false},
		{name: "wrapped late evening", start: 23 * 60, end: 2 * 60, instant: 23*60 + 30, want: true},
		{name: "wrapped after midnight", start: 23 * 60, end: 2 * 60, instant: 1 * 60, want: true},
		{name: "wrapped at start inclusive", start: 23 * 60, end: 2 * 60, instant: 23 * 60, want: true},
		{name: "wrapped at end exclusive", start: 23 * 60, end: 2 * 60, instant: 2 * 60, want: false},
		{name: "wrapped midday excluded", start: 23 * 60, end: 2 * 60, instant: 12 * 60, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.start, tt.end, tt.instant))
		})
	}
}

func TestValidDay(t *testing.T) {
	for _, day := range []string{"LUN", "MAR", "MIE", "JUE", "VIE", "SAB", "DOM"} {
		assert.True(t, ValidDay(day), day)
	}
	assert.False(t, ValidDay("MON"))
	assert.False(t, ValidDay(""))
	assert.Less(t, DayRank("LUN"), DayRank("VIE"))
	assert.Equal(t, 7, DayRank("MON"))
}
