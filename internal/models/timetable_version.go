package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TimetableVersion is a named snapshot of the committed entry set.
type TimetableVersion struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Period    string         `db:"period" json:"period"`
	Entries   types.JSONText `db:"entries" json:"entries"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// VersionEntry is the serialized form of a timetable entry inside a snapshot.
type VersionEntry struct {
	ProfessorID string    `json:"professor_id"`
	SubjectID   string    `json:"subject_id"`
	RoomID      string    `json:"room_id"`
	Day         string    `json:"day"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ClassKind   ClassKind `json:"class_kind"`
	Section     string    `json:"section"`
	Period      string    `json:"period"`
	Program     string    `json:"program"`
}
