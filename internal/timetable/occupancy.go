package timetable

type busySlot struct {
	day string
	iv  Interval
}

type sectionKey struct {
	subjectID string
	section   string
}

// Occupancy tracks committed slots and professor load inside a run. It is
// not safe for concurrent use; each run owns its own instance.
type Occupancy struct {
	professors map[string][]busySlot
	rooms      map[string][]busySlot
	sections   map[sectionKey][]busySlot
	load       map[string]int
}

// NewOccupancy returns an empty occupancy tracker.
func NewOccupancy() *Occupancy {
	return &Occupancy{
		professors: make(map[string][]busySlot),
		rooms:      make(map[string][]busySlot),
		sections:   make(map[sectionKey][]busySlot),
		load:       make(map[string]int),
	}
}

// ProfessorFree reports whether the professor has no committed slot
// overlapping the interval on the given day.
func (o *Occupancy) ProfessorFree(professorID, day string, iv Interval) bool {
	return free(o.professors[professorID], day, iv)
}

// RoomFree reports whether the room has no committed slot overlapping the
// interval on the given day.
func (o *Occupancy) RoomFree(roomID, day string, iv Interval) bool {
	return free(o.rooms[roomID], day, iv)
}

// SectionFree reports whether the subject section has no committed slot
// overlapping the interval on the given day.
func (o *Occupancy) SectionFree(subjectID, section, day string, iv Interval) bool {
	return free(o.sections[sectionKey{subjectID: subjectID, section: section}], day, iv)
}

// Load returns the professor's committed minutes so far.
func (o *Occupancy) Load(professorID string) int {
	return o.load[professorID]
}

// Loads returns every professor's committed hours, partial hours rounded
// up.
func (o *Occupancy) Loads() map[string]int {
	out := make(map[string]int, len(o.load))
	for id, minutes := range o.load {
		out[id] = (minutes + 59) / 60
	}
	return out
}

// Commit records an entry against the professor, room and section tracks and
// adds its duration to the professor's load.
func (o *Occupancy) Commit(e Entry) {
	slot := busySlot{day: e.Day, iv: e.Interval}
	o.professors[e.ProfessorID] = append(o.professors[e.ProfessorID], slot)
	o.rooms[e.RoomID] = append(o.rooms[e.RoomID], slot)
	k := sectionKey{subjectID: e.SubjectID, section: e.Section}
	o.sections[k] = append(o.sections[k], slot)
	o.load[e.ProfessorID] += e.Interval.Duration()
}

func free(busy []busySlot, day string, iv Interval) bool {
	for _, b := range busy {
		if b.day == day && b.iv.Overlaps(iv) {
			return false
		}
	}
	return true
}
