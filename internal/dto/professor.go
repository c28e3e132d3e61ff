package dto

import "encoding/json"

// CreateProfessorRequest is the payload for registering a professor.
//
// Availability is the raw weekly window document, e.g.
// {"LUN": ["08:00-12:00"]}. It is validated when the generator consumes it.
type CreateProfessorRequest struct {
	FirstName      string          `json:"first_name" binding:"required"`
	LastName       string          `json:"last_name" binding:"required"`
	Specialty      *string         `json:"specialty"`
	MaxWeeklyHours int             `json:"max_weekly_hours" binding:"omitempty,gte=0,lte=80"`
	Availability   json.RawMessage `json:"availability"`
}

// UpdateProfessorRequest carries a partial professor update; nil fields are
// left untouched.
type UpdateProfessorRequest struct {
	FirstName      *string         `json:"first_name"`
	LastName       *string         `json:"last_name"`
	Specialty      *string         `json:"specialty"`
	MaxWeeklyHours *int            `json:"max_weekly_hours" binding:"omitempty,gte=0,lte=80"`
	Availability   json.RawMessage `json:"availability"`
}

// ListProfessorsQuery filters the professor listing.
type ListProfessorsQuery struct {
	ListQuery
	Search string `form:"search"`
}
