package dto

// CreateRestrictionRequest is the payload for registering a blackout rule.
//
// Kind selects which target and time fields are required; the service
// validates the combination.
type CreateRestrictionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Kind        string  `json:"kind" binding:"required,oneof=PROFESOR_NO_DISPONIBLE AULA_NO_DISPONIBLE MATERIA_NO_EN_AULA"`
	Day         string  `json:"day" binding:"required,oneof=LUN MAR MIE JUE VIE SAB DOM"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	ProfessorID *string `json:"professor_id" binding:"omitempty,uuid"`
	RoomID      *string `json:"room_id" binding:"omitempty,uuid"`
	SubjectID   *string `json:"subject_id" binding:"omitempty,uuid"`
	Description *string `json:"description"`
}

// ListRestrictionsQuery filters the restriction listing.
type ListRestrictionsQuery struct {
	ListQuery
	Kind string `form:"kind" binding:"omitempty,oneof=PROFESOR_NO_DISPONIBLE AULA_NO_DISPONIBLE MATERIA_NO_EN_AULA"`
	Day  string `form:"day" binding:"omitempty,oneof=LUN MAR MIE JUE VIE SAB DOM"`
}
