package timetable

import (
	"encoding/json"
	"fmt"

	"github.com/opt-telecom/horarios-api/internal/models"
)

// DecodeProfessor converts a stored professor into the engine's typed view.
//
// A malformed availability document closes the availability rather than
// opening it: the professor cannot be scheduled until the data is fixed. Bad
// day codes and unparseable windows are dropped individually, each with a
// warning.
func DecodeProfessor(p models.Professor) (Professor, []string) {
	out := Professor{
		ID:               p.ID,
		Name:             p.FullName(),
		MaxWeeklyMinutes: p.MaxWeeklyHours * 60,
	}
	if len(p.Availability) == 0 || string(p.Availability) == "null" {
		return out, nil
	}

	var raw map[string][]string
	if err := json.Unmarshal(p.Availability, &raw); err != nil {
		out.Availability.Closed = true
		return out, []string{fmt.Sprintf("professor %s: unreadable availability, treating as unavailable: %v", p.ID, err)}
	}
	if len(raw) == 0 {
		return out, nil
	}

	var warnings []string
	windows := make(map[string][]Interval, len(raw))
	for day, specs := range raw {
		if !ValidDay(day) {
			warnings = append(warnings, fmt.Sprintf("professor %s: unknown day %q in availability, skipped", p.ID, day))
			continue
		}
		for _, spec := range specs {
			iv, err := ParseWindow(spec)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("professor %s: %v, skipped", p.ID, err))
				continue
			}
			windows[day] = append(windows[day], iv)
		}
	}
	if len(windows) == 0 {
		// Everything declared was unusable; do not fall open.
		out.Availability.Closed = true
		warnings = append(warnings, fmt.Sprintf("professor %s: no usable availability windows, treating as unavailable", p.ID))
		return out, warnings
	}
	out.Availability.Windows = windows
	return out, warnings
}

// DecodeSubject converts a stored subject into the engine's typed view.
//
// A malformed room requirement document is fail-closed as an impossible
// requirement so no room matches until the data is fixed.
func DecodeSubject(s models.Subject) (Subject, []string) {
	out := Subject{
		ID:      s.ID,
		Name:    s.Name,
		Program: s.Program,
		Hours: map[models.ClassKind]int{
			models.ClassKindLecture:  s.LectureHours,
			models.ClassKindPractice: s.PracticeHours,
			models.ClassKindLab:      s.LabHours,
		},
		Sections: s.Sections,
	}
	if out.Sections < 1 {
		out.Sections = 1
	}
	if len(s.QualifiedProfessorIDs) > 0 {
		out.Qualified = make(map[string]struct{}, len(s.QualifiedProfessorIDs))
		for _, id := range s.QualifiedProfessorIDs {
			out.Qualified[id] = struct{}{}
		}
	}
	if len(s.RoomRequirement) == 0 || string(s.RoomRequirement) == "null" {
		return out, nil
	}

	var raw struct {
		Category     string   `json:"tipo_aula"`
		MinResources []string `json:"recursos_minimos"`
		MinCapacity  int      `json:"capacidad_minima"`
	}
	if err := json.Unmarshal(s.RoomRequirement, &raw); err != nil {
		out.Requirement = &RoomRequirement{Impossible: true}
		return out, []string{fmt.Sprintf("subject %s: unreadable room requirement, no room will match: %v", s.ID, err)}
	}
	if raw.Category == "" && len(raw.MinResources) == 0 && raw.MinCapacity == 0 {
		return out, nil
	}
	out.Requirement = &RoomRequirement{
		Category:     raw.Category,
		MinResources: raw.MinResources,
		MinCapacity:  raw.MinCapacity,
	}
	return out, nil
}

// DecodeRoom converts a stored room into the engine's typed view. A
// malformed resource list leaves the room with no resources.
func DecodeRoom(r models.Room) (Room, []string) {
	out := Room{
		ID:       r.ID,
		Code:     r.Code,
		Category: r.Category,
		Capacity: r.Capacity,
	}
	if len(r.Resources) == 0 || string(r.Resources) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(r.Resources, &out.Resources); err != nil {
		return out, []string{fmt.Sprintf("room %s: unreadable resource list, treating as none: %v", r.ID, err)}
	}
	return out, nil
}

// DecodeRestriction converts a stored restriction into the engine's typed
// view. It returns an error when the rule is unusable, so the caller can
// skip it with a warning instead of silently weakening generation.
func DecodeRestriction(r models.Restriction) (Restriction, error) {
	out := Restriction{Kind: r.Kind, Day: r.Day}
	if !ValidDay(r.Day) {
		return out, fmt.Errorf("restriction %s: unknown day %q", r.ID, r.Day)
	}
	switch r.Kind {
	case models.RestrictionProfessorUnavailable:
		if r.ProfessorID == nil {
			return out, fmt.Errorf("restriction %s: missing professor", r.ID)
		}
		out.ProfessorID = *r.ProfessorID
	case models.RestrictionRoomUnavailable:
		if r.RoomID == nil {
			return out, fmt.Errorf("restriction %s: missing room", r.ID)
		}
		out.RoomID = *r.RoomID
	case models.RestrictionSubjectNotInRoom:
		if r.SubjectID == nil || r.RoomID == nil {
			return out, fmt.Errorf("restriction %s: missing subject or room", r.ID)
		}
		out.SubjectID = *r.SubjectID
		out.RoomID = *r.RoomID
		return out, nil
	default:
		return out, fmt.Errorf("restriction %s: unknown kind %q", r.ID, r.Kind)
	}

	if r.StartTime == nil || r.EndTime == nil {
		return out, fmt.Errorf("restriction %s: missing time range", r.ID)
	}
	start, err := ParseClock(*r.StartTime)
	if err != nil {
		return out, fmt.Errorf("restriction %s: %v", r.ID, err)
	}
	end, err := ParseClock(*r.EndTime)
	if err != nil {
		return out, fmt.Errorf("restriction %s: %v", r.ID, err)
	}
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return out, fmt.Errorf("restriction %s: start not before end", r.ID)
	}
	out.Interval = &iv
	return out, nil
}

// DecodeRequest converts a stored class request into the engine's typed
// view. Requests without a complete suggested slot are unusable and return
// an error; the engine never invents slots for them.
func DecodeRequest(r models.ClassRequest) (Request, error) {
	out := Request{
		ID:          r.ID,
		SubjectID:   r.SubjectID,
		ProfessorID: r.ProfessorID,
		Kind:        r.ClassKind,
		Section:     r.Section,
		Period:      r.Period,
		Program:     r.Program,
	}
	if r.RoomID == nil || r.Day == nil || r.StartTime == nil || r.EndTime == nil {
		return out, fmt.Errorf("request %s: incomplete suggested slot", r.ID)
	}
	if !ValidDay(*r.Day) {
		return out, fmt.Errorf("request %s: unknown day %q", r.ID, *r.Day)
	}
	start, err := ParseClock(*r.StartTime)
	if err != nil {
		return out, fmt.Errorf("request %s: %v", r.ID, err)
	}
	end, err := ParseClock(*r.EndTime)
	if err != nil {
		return out, fmt.Errorf("request %s: %v", r.ID, err)
	}
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return out, fmt.Errorf("request %s: start not before end", r.ID)
	}
	out.RoomID = *r.RoomID
	out.Day = *r.Day
	out.Interval = iv
	return out, nil
}
