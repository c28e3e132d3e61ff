package dto

import "github.com/opt-telecom/horarios-api/internal/timetable"

// GenerateTimetableRequest starts a generation run for one academic period.
//
// A non-zero Seed makes the run reproducible. VersionName, when set, names
// the snapshot saved after a successful run.
type GenerateTimetableRequest struct {
	Period      string `json:"period" binding:"required"`
	Seed        int64  `json:"seed"`
	VersionName string `json:"version_name"`
}

// GenerateTimetableResponse summarizes a finished run.
type GenerateTimetableResponse struct {
	Period        string                `json:"period"`
	Seed          int64                 `json:"seed"`
	EntriesPlaced int                   `json:"entries_placed"`
	VersionID     string                `json:"version_id,omitempty"`
	Outcomes      []timetable.Outcome   `json:"outcomes"`
	Shortfalls    []timetable.Shortfall `json:"shortfalls"`
	Loads         map[string]int        `json:"professor_loads,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
}

// ListTimetableQuery filters the committed timetable listing.
type ListTimetableQuery struct {
	ListQuery
	Period      string `form:"period" binding:"required"`
	ProfessorID string `form:"professor_id" binding:"omitempty,uuid"`
	SubjectID   string `form:"subject_id" binding:"omitempty,uuid"`
	RoomID      string `form:"room_id" binding:"omitempty,uuid"`
	Day         string `form:"day" binding:"omitempty,oneof=LUN MAR MIE JUE VIE SAB DOM"`
}
