package dto

import "encoding/json"

// CreateSubjectRequest is the payload for registering a subject.
//
// RoomRequirement is the raw requirement document, e.g.
// {"tipo_aula": "Laboratorio", "recursos_minimos": ["Computadoras"]}.
type CreateSubjectRequest struct {
	Name                  string          `json:"name" binding:"required"`
	LectureHours          int             `json:"lecture_hours" binding:"omitempty,gte=0,lte=40"`
	PracticeHours         int             `json:"practice_hours" binding:"omitempty,gte=0,lte=40"`
	LabHours              int             `json:"lab_hours" binding:"omitempty,gte=0,lte=40"`
	Sections              int             `json:"sections" binding:"omitempty,gte=1,lte=20"`
	Program               string          `json:"program" binding:"required"`
	QualifiedProfessorIDs []string        `json:"qualified_professor_ids" binding:"omitempty,dive,uuid"`
	RoomRequirement       json.RawMessage `json:"room_requirement"`
}

// UpdateSubjectRequest carries a partial subject update; nil fields are left
// untouched.
type UpdateSubjectRequest struct {
	Name                  *string         `json:"name"`
	LectureHours          *int            `json:"lecture_hours" binding:"omitempty,gte=0,lte=40"`
	PracticeHours         *int            `json:"practice_hours" binding:"omitempty,gte=0,lte=40"`
	LabHours              *int            `json:"lab_hours" binding:"omitempty,gte=0,lte=40"`
	Sections              *int            `json:"sections" binding:"omitempty,gte=1,lte=20"`
	Program               *string         `json:"program"`
	QualifiedProfessorIDs []string        `json:"qualified_professor_ids" binding:"omitempty,dive,uuid"`
	RoomRequirement       json.RawMessage `json:"room_requirement"`
}

// ListSubjectsQuery filters the subject listing.
type ListSubjectsQuery struct {
	ListQuery
	Search  string `form:"search"`
	Program string `form:"program"`
}
