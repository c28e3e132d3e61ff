package dto

import "encoding/json"

// CreateRoomRequest is the payload for registering a room.
type CreateRoomRequest struct {
	Code      string          `json:"code" binding:"required"`
	Category  string          `json:"category" binding:"required"`
	Capacity  int             `json:"capacity" binding:"required,gte=1,lte=1000"`
	Location  *string         `json:"location"`
	Resources json.RawMessage `json:"resources"`
}

// UpdateRoomRequest carries a partial room update; nil fields are left
// untouched.
type UpdateRoomRequest struct {
	Code      *string         `json:"code"`
	Category  *string         `json:"category"`
	Capacity  *int            `json:"capacity" binding:"omitempty,gte=1,lte=1000"`
	Location  *string         `json:"location"`
	Resources json.RawMessage `json:"resources"`
}

// ListRoomsQuery filters the room listing.
type ListRoomsQuery struct {
	ListQuery
	Search   string `form:"search"`
	Category string `form:"category"`
}
