package dto

// CreateClassRequestRequest is the payload for filing a teaching request
// with its suggested slot.
type CreateClassRequestRequest struct {
	SubjectID   string  `json:"subject_id" binding:"required,uuid"`
	ProfessorID string  `json:"professor_id" binding:"required,uuid"`
	RoomID      *string `json:"room_id" binding:"omitempty,uuid"`
	Day         *string `json:"day" binding:"omitempty,oneof=LUN MAR MIE JUE VIE SAB DOM"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	ClassKind   string  `json:"class_kind" binding:"required,oneof=LECTURE PRACTICE LAB"`
	Section     string  `json:"section" binding:"required"`
	Period      string  `json:"period" binding:"required"`
	Program     string  `json:"program" binding:"required"`
}

// BulkCreateClassRequestsRequest files several teaching requests at once.
type BulkCreateClassRequestsRequest struct {
	Items []CreateClassRequestRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

// BulkClassRequestResult reports the outcome of one item in a bulk filing.
type BulkClassRequestResult struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// ListClassRequestsQuery filters the teaching request listing.
type ListClassRequestsQuery struct {
	ListQuery
	State  string `form:"state" binding:"omitempty,oneof=PENDING ASSIGNED FAILED ERROR CANCELLED"`
	Period string `form:"period"`
}
