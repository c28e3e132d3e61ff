package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// ClassKind distinguishes the hour buckets a subject must fill each week.
type ClassKind string

const (
	ClassKindLecture  ClassKind = "LECTURE"
	ClassKindPractice ClassKind = "PRACTICE"
	ClassKindLab      ClassKind = "LAB"
)

// ClassKinds lists the buckets in assignment priority order.
var ClassKinds = []ClassKind{ClassKindLecture, ClassKindPractice, ClassKindLab}

// Subject represents an academic subject and its weekly hour demand.
//
// RoomRequirement holds the optional JSON requirement document, e.g.
// {"tipo_aula": "Laboratorio", "recursos_minimos": ["Computadoras"]}.
// An empty QualifiedProfessorIDs set means any professor qualifies.
type Subject struct {
	ID                    string         `db:"id" json:"id"`
	Name                  string         `db:"name" json:"name"`
	WeeklyHours           int            `db:"weekly_hours" json:"weekly_hours"`
	LectureHours          int            `db:"lecture_hours" json:"lecture_hours"`
	PracticeHours         int            `db:"practice_hours" json:"practice_hours"`
	LabHours              int            `db:"lab_hours" json:"lab_hours"`
	Sections              int            `db:"sections" json:"sections"`
	Program               string         `db:"program" json:"program"`
	QualifiedProfessorIDs pq.StringArray `db:"qualified_professor_ids" json:"qualified_professor_ids"`
	RoomRequirement       types.JSONText `db:"room_requirement" json:"room_requirement,omitempty"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}

// HoursFor returns the weekly demand for one class kind.
func (s Subject) HoursFor(kind ClassKind) int {
	switch kind {
	case ClassKindLecture:
		return s.LectureHours
	case ClassKindPractice:
		return s.PracticeHours
	case ClassKindLab:
		return s.LabHours
	}
	return 0
}

// TotalHours sums the demand across all class kinds.
func (s Subject) TotalHours() int {
	return s.LectureHours + s.PracticeHours + s.LabHours
}

// SubjectFilter captures filtering options for listing subjects.
type SubjectFilter struct {
	Search    string
	Program   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
