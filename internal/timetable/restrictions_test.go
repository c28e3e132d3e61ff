package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/models"
)

func TestBuildRestrictionIndex(t *testing.T) {
	rules := []models.Restriction{
		{ID: "x1", Kind: models.RestrictionProfessorUnavailable, Day: "LUN", ProfessorID: strPtr("p1"), StartTime: strPtr("08:00"), EndTime: strPtr("10:00")},
		{ID: "x2", Kind: models.RestrictionRoomUnavailable, Day: "MAR", RoomID: strPtr("r1"), StartTime: strPtr("14:00"), EndTime: strPtr("18:00")},
		{ID: "x3", Kind: models.RestrictionSubjectNotInRoom, Day: "VIE", SubjectID: strPtr("s1"), RoomID: strPtr("r2")},
		{ID: "bad", Kind: models.RestrictionProfessorUnavailable, Day: "LUNES", ProfessorID: strPtr("p1"), StartTime: strPtr("08:00"), EndTime: strPtr("10:00")},
	}
	ix, warns := BuildRestrictionIndex(rules)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "bad")

	assert.True(t, ix.ProfessorBlocked("p1", "LUN", Interval{Start: 9 * 60, End: 11 * 60}))
	assert.False(t, ix.ProfessorBlocked("p1", "MAR", Interval{Start: 9 * 60, End: 11 * 60}))
	assert.False(t, ix.ProfessorBlocked("p2", "LUN", Interval{Start: 9 * 60, End: 11 * 60}))
	// Touching the blackout boundary is allowed.
	assert.False(t, ix.ProfessorBlocked("p1", "LUN", Interval{Start: 10 * 60, End: 12 * 60}))

	assert.True(t, ix.RoomBlocked("r1", "MAR", Interval{Start: 16 * 60, End: 18 * 60}))
	assert.False(t, ix.RoomBlocked("r1", "MAR", Interval{Start: 12 * 60, End: 14 * 60}))

	assert.True(t, ix.SubjectRoomBarred("s1", "r2", "VIE"))
	assert.False(t, ix.SubjectRoomBarred("s1", "r2", "LUN"))
	assert.False(t, ix.SubjectRoomBarred("s1", "r1", "VIE"))
}

func TestBuildRestrictionIndexIsIdempotent(t *testing.T) {
	rules := []models.Restriction{
		{ID: "x1", Kind: models.RestrictionProfessorUnavailable, Day: "LUN", ProfessorID: strPtr("p1"), StartTime: strPtr("08:00"), EndTime: strPtr("10:00")},
	}
	a, _ := BuildRestrictionIndex(rules)
	b, _ := BuildRestrictionIndex(rules)
	probe := Interval{Start: 8 * 60, End: 10 * 60}
	assert.Equal(t, a.ProfessorBlocked("p1", "LUN", probe), b.ProfessorBlocked("p1", "LUN", probe))
	assert.Equal(t, a.ProfessorBlocked("p1", "MAR", probe), b.ProfessorBlocked("p1", "MAR", probe))
}
