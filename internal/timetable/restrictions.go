package timetable

import (
	"fmt"

	"github.com/opt-telecom/horarios-api/internal/models"
)

type restrictionKey struct {
	day string
	id  string
}

type subjectRoomKey struct {
	day       string
	subjectID string
	roomID    string
}

// RestrictionIndex answers blackout lookups during a generation run. It is
// built once per run; rebuilding from the same rules yields the same index.
type RestrictionIndex struct {
	professors  map[restrictionKey][]Interval
	rooms       map[restrictionKey][]Interval
	subjectRoom map[subjectRoomKey]struct{}
}

// BuildRestrictionIndex indexes decoded rules by day and target. Stored
// rules that cannot be decoded are skipped with a warning so one bad row
// never aborts a run.
func BuildRestrictionIndex(rules []models.Restriction) (*RestrictionIndex, []string) {
	ix := &RestrictionIndex{
		professors:  make(map[restrictionKey][]Interval),
		rooms:       make(map[restrictionKey][]Interval),
		subjectRoom: make(map[subjectRoomKey]struct{}),
	}
	var warnings []string
	for _, rule := range rules {
		decoded, err := DecodeRestriction(rule)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%v, skipped", err))
			continue
		}
		switch decoded.Kind {
		case models.RestrictionProfessorUnavailable:
			k := restrictionKey{day: decoded.Day, id: decoded.ProfessorID}
			ix.professors[k] = append(ix.professors[k], *decoded.Interval)
		case models.RestrictionRoomUnavailable:
			k := restrictionKey{day: decoded.Day, id: decoded.RoomID}
			ix.rooms[k] = append(ix.rooms[k], *decoded.Interval)
		case models.RestrictionSubjectNotInRoom:
			ix.subjectRoom[subjectRoomKey{day: decoded.Day, subjectID: decoded.SubjectID, roomID: decoded.RoomID}] = struct{}{}
		}
	}
	return ix, warnings
}

// ProfessorBlocked reports whether any professor blackout overlaps the
// interval. Touching a blackout boundary is allowed.
func (ix *RestrictionIndex) ProfessorBlocked(professorID, day string, iv Interval) bool {
	return anyOverlap(ix.professors[restrictionKey{day: day, id: professorID}], iv)
}

// RoomBlocked reports whether any room blackout overlaps the interval.
func (ix *RestrictionIndex) RoomBlocked(roomID, day string, iv Interval) bool {
	return anyOverlap(ix.rooms[restrictionKey{day: day, id: roomID}], iv)
}

// SubjectRoomBarred reports whether the subject is barred from the room for
// the whole day.
func (ix *RestrictionIndex) SubjectRoomBarred(subjectID, roomID, day string) bool {
	_, ok := ix.subjectRoom[subjectRoomKey{day: day, subjectID: subjectID, roomID: roomID}]
	return ok
}

func anyOverlap(blocked []Interval, iv Interval) bool {
	for _, b := range blocked {
		if b.Overlaps(iv) {
			return true
		}
	}
	return false
}
