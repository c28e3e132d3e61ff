package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Professor represents an instructor who can be scheduled.
//
// Availability holds the declared weekly windows as JSON keyed by day code,
// e.g. {"LUN": ["08:00-12:00", "14:00-18:00"]}. An empty document means the
// professor declared nothing and is treated as always available.
type Professor struct {
	ID             string         `db:"id" json:"id"`
	FirstName      string         `db:"first_name" json:"first_name"`
	LastName       string         `db:"last_name" json:"last_name"`
	Specialty      *string        `db:"specialty" json:"specialty,omitempty"`
	MaxWeeklyHours int            `db:"max_weekly_hours" json:"max_weekly_hours"`
	Availability   types.JSONText `db:"availability" json:"availability"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name for diagnostics and exports.
func (p Professor) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// ProfessorFilter captures filtering options for listing professors.
type ProfessorFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
