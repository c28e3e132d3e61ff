package models

import "time"

// RestrictionKind enumerates supported blackout rules.
type RestrictionKind string

const (
	RestrictionProfessorUnavailable RestrictionKind = "PROFESOR_NO_DISPONIBLE"
	RestrictionRoomUnavailable      RestrictionKind = "AULA_NO_DISPONIBLE"
	RestrictionSubjectNotInRoom     RestrictionKind = "MATERIA_NO_EN_AULA"
)

// Restriction is a blackout rule applied during generation.
//
// The first two kinds carry a day plus a time interval; the subject-room bar
// carries a day plus the subject/room pair only.
type Restriction struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Kind        RestrictionKind `db:"kind" json:"kind"`
	Day         string          `db:"day" json:"day"`
	StartTime   *string         `db:"start_time" json:"start_time,omitempty"`
	EndTime     *string         `db:"end_time" json:"end_time,omitempty"`
	ProfessorID *string         `db:"professor_id" json:"professor_id,omitempty"`
	RoomID      *string         `db:"room_id" json:"room_id,omitempty"`
	SubjectID   *string         `db:"subject_id" json:"subject_id,omitempty"`
	Description *string         `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// RestrictionFilter captures filtering options for listing restrictions.
type RestrictionFilter struct {
	Kind      string
	Day       string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
