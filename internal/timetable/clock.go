// Package timetable implements the assignment engine that places teaching
// requests and weekly subject demand into day/time/room slots while honoring
// availability declarations, blackout restrictions, occupancy and load caps.
package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day expressed in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" or "HH:MM:SS" into a Clock. Seconds are ignored.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock(h*60 + m), nil
}

// String renders the clock as "HH:MM:SS", the form stored with entries.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(c)/60, int(c)%60)
}

// Short renders the clock as "HH:MM".
func (c Clock) Short() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Interval is a half-open [Start, End) slice of a day.
type Interval struct {
	Start Clock
	End   Clock
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int { return int(iv.End - iv.Start) }

// Overlaps reports whether two intervals share any time. Intervals that only
// touch at a boundary do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// Valid reports whether the interval is well-formed and non-empty.
func (iv Interval) Valid() bool { return iv.Start < iv.End }

// InRange reports whether instant falls inside [start, end). Unlike Interval,
// it accepts ranges that wrap past midnight: when start > end the range is
// read as [start, 24:00) followed by [00:00, end).
func InRange(start, end, instant Clock) bool {
	if start <= end {
		return start <= instant && instant < end
	}
	return start <= instant || instant < end
}

// Weekday codes as they appear in availability declarations, restrictions
// and committed entries.
const (
	Monday    = "LUN"
	Tuesday   = "MAR"
	Wednesday = "MIE"
	Thursday  = "JUE"
	Friday    = "VIE"
	Saturday  = "SAB"
	Sunday    = "DOM"
)

var dayOrder = map[string]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// ValidDay reports whether code is a known weekday code.
func ValidDay(code string) bool {
	_, ok := dayOrder[code]
	return ok
}

// DayRank returns the ordering index of a weekday code, with unknown codes
// sorting last.
func DayRank(code string) int {
	if r, ok := dayOrder[code]; ok {
		return r
	}
	return len(dayOrder)
}
