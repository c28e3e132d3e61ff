package dto

// SaveVersionRequest snapshots the current timetable of a period.
type SaveVersionRequest struct {
	Name   string `json:"name" binding:"required"`
	Period string `json:"period" binding:"required"`
}

// ListVersionsQuery filters the snapshot listing.
type ListVersionsQuery struct {
	ListQuery
	Period string `form:"period"`
}
