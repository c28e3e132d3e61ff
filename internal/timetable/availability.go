package timetable

import (
	"fmt"
	"strings"
)

// Availability is a professor's declared weekly windows, keyed by day code.
//
// An empty declaration means the professor never stated their windows and is
// treated as always available. A declaration whose document could not be
// parsed is closed: every check fails until the data is fixed.
type Availability struct {
	Windows map[string][]Interval
	Closed  bool
}

// Allows reports whether the interval fits entirely inside one declared
// window for the given day. Days with no declared windows allow nothing
// unless the whole declaration is empty.
func (a Availability) Allows(day string, iv Interval) bool {
	if a.Closed {
		return false
	}
	if len(a.Windows) == 0 {
		return true
	}
	for _, w := range a.Windows[day] {
		if w.Contains(iv) {
			return true
		}
	}
	return false
}

// ParseWindow parses a "HH:MM-HH:MM" window string into an interval.
func ParseWindow(s string) (Interval, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("invalid window %q", s)
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return Interval{}, fmt.Errorf("invalid window %q: %w", s, err)
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return Interval{}, fmt.Errorf("invalid window %q: %w", s, err)
	}
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, fmt.Errorf("invalid window %q: start not before end", s)
	}
	return iv, nil
}
