package models

import "time"

// TimetableEntry is one committed timetable slot for an academic period.
//
// Within a period no two entries may overlap in time on the same day while
// sharing a room, a professor, or a (subject, section) pair. The generator
// enforces this before every commit.
type TimetableEntry struct {
	ID          string    `db:"id" json:"id"`
	ProfessorID string    `db:"professor_id" json:"professor_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	RoomID      string    `db:"room_id" json:"room_id"`
	Day         string    `db:"day" json:"day"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	ClassKind   ClassKind `db:"class_kind" json:"class_kind"`
	Section     string    `db:"section" json:"section"`
	Period      string    `db:"period" json:"period"`
	Program     string    `db:"program" json:"program"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TimetableFilter captures filtering options for listing timetable entries.
type TimetableFilter struct {
	Period      string
	ProfessorID string
	SubjectID   string
	RoomID      string
	Day         string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
