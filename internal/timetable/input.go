package timetable

import "github.com/opt-telecom/horarios-api/internal/models"

// Professor is the engine-facing view of an instructor.
//
// MaxWeeklyMinutes of zero means no load cap.
type Professor struct {
	ID               string
	Name             string
	MaxWeeklyMinutes int
	Availability     Availability
}

// Subject is the engine-facing view of a subject and its weekly demand.
//
// An empty Qualified set means any professor may teach it.
type Subject struct {
	ID          string
	Name        string
	Hours       map[models.ClassKind]int
	Sections    int
	Program     string
	Qualified   map[string]struct{}
	Requirement *RoomRequirement
}

// TotalHours sums the weekly demand across class kinds.
func (s Subject) TotalHours() int {
	total := 0
	for _, h := range s.Hours {
		total += h
	}
	return total
}

// QualifiedFor reports whether the professor may teach this subject.
func (s Subject) QualifiedFor(professorID string) bool {
	if len(s.Qualified) == 0 {
		return true
	}
	_, ok := s.Qualified[professorID]
	return ok
}

// Room is the engine-facing view of a schedulable room.
type Room struct {
	ID        string
	Code      string
	Category  string
	Capacity  int
	Resources []string
}

// Request is a teaching request with its suggested slot.
type Request struct {
	ID          string
	SubjectID   string
	ProfessorID string
	RoomID      string
	Day         string
	Interval    Interval
	Kind        models.ClassKind
	Section     string
	Period      string
	Program     string
}

// Restriction is a decoded blackout rule. Interval is nil for the
// subject-room bar, which applies to the whole day.
type Restriction struct {
	Kind        models.RestrictionKind
	Day         string
	Interval    *Interval
	ProfessorID string
	RoomID      string
	SubjectID   string
}

// Entry is one placed class, produced by the engine and committed by the
// caller.
type Entry struct {
	ProfessorID string
	SubjectID   string
	RoomID      string
	Day         string
	Interval    Interval
	Kind        models.ClassKind
	Section     string
	Period      string
	Program     string
}
