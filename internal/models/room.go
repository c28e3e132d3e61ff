package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Room represents a schedulable room.
//
// Resources holds the JSON list of special resources, e.g.
// ["Proyector", "Computadoras"].
type Room struct {
	ID        string         `db:"id" json:"id"`
	Code      string         `db:"code" json:"code"`
	Category  string         `db:"category" json:"category"`
	Capacity  int            `db:"capacity" json:"capacity"`
	Location  *string        `db:"location" json:"location,omitempty"`
	Resources types.JSONText `db:"resources" json:"resources"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures filtering options for listing rooms.
type RoomFilter struct {
	Search    string
	Category  string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
