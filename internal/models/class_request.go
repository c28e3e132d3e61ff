package models

import "time"

// ClassRequestState tracks the lifecycle of a teaching request.
type ClassRequestState string

const (
	ClassRequestPending   ClassRequestState = "PENDING"
	ClassRequestAssigned  ClassRequestState = "ASSIGNED"
	ClassRequestFailed    ClassRequestState = "FAILED"
	ClassRequestError     ClassRequestState = "ERROR"
	ClassRequestCancelled ClassRequestState = "CANCELLED"
)

// ClassRequest is a pending teaching request carrying a suggested slot.
//
// Day, StartTime, EndTime and RoomID describe the preferred combination the
// generator validates first; the generator does not search alternatives for
// requests whose suggestion is rejected.
type ClassRequest struct {
	ID          string            `db:"id" json:"id"`
	SubjectID   string            `db:"subject_id" json:"subject_id"`
	ProfessorID string            `db:"professor_id" json:"professor_id"`
	RoomID      *string           `db:"room_id" json:"room_id,omitempty"`
	Day         *string           `db:"day" json:"day,omitempty"`
	StartTime   *string           `db:"start_time" json:"start_time,omitempty"`
	EndTime     *string           `db:"end_time" json:"end_time,omitempty"`
	ClassKind   ClassKind         `db:"class_kind" json:"class_kind"`
	Section     string            `db:"section" json:"section"`
	Period      string            `db:"period" json:"period"`
	Program     string            `db:"program" json:"program"`
	State       ClassRequestState `db:"state" json:"state"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// ClassRequestFilter captures filtering options for listing class requests.
type ClassRequestFilter struct {
	State     string
	Period    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
