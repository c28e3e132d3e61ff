package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opt-telecom/horarios-api/internal/models"
)

func TestOccupancy(t *testing.T) {
	o := NewOccupancy()
	slot := Interval{Start: 8 * 60, End: 10 * 60}

	assert.True(t, o.ProfessorFree("p1", "LUN", slot))
	assert.True(t, o.RoomFree("r1", "LUN", slot))
	assert.True(t, o.SectionFree("s1", "S1", "LUN", slot))
	assert.Zero(t, o.Load("p1"))

	o.Commit(Entry{
		ProfessorID: "p1",
		SubjectID:   "s1",
		RoomID:      "r1",
		Day:         "LUN",
		Interval:    slot,
		Kind:        models.ClassKindLecture,
		Section:     "S1",
	})

	assert.False(t, o.ProfessorFree("p1", "LUN", Interval{Start: 9 * 60, End: 11 * 60}))
	assert.False(t, o.RoomFree("r1", "LUN", slot))
	assert.False(t, o.SectionFree("s1", "S1", "LUN", slot))
	assert.Equal(t, 120, o.Load("p1"))

	// Adjacent slots and other days stay free.
	assert.True(t, o.ProfessorFree("p1", "LUN", Interval{Start: 10 * 60, End: 12 * 60}))
	assert.True(t, o.ProfessorFree("p1", "MAR", slot))
	assert.True(t, o.RoomFree("r2", "LUN", slot))
	assert.True(t, o.SectionFree("s1", "S2", "LUN", slot))
	assert.True(t, o.SectionFree("s2", "S1", "LUN", slot))
}
