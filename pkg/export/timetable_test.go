package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/models"
)

func sampleEntries() []models.TimetableEntry {
	return []models.TimetableEntry{
		{
			Day:         "LUN",
			StartTime:   "08:00:00",
			EndTime:     "10:00:00",
			SubjectID:   "s1",
			Section:     "S1",
			ClassKind:   models.ClassKindLecture,
			ProfessorID: "p1",
			RoomID:      "r1",
			Program:     "TEL",
		},
	}
}

func TestTimetableCSV(t *testing.T) {
	out, err := TimetableCSV(sampleEntries())
	require.NoError(t, err)

	assert.Contains(t, string(out), "Dia,Inicio,Fin")
	assert.Contains(t, string(out), "LUN,08:00,10:00,s1,S1,LECTURE,p1,r1,TEL")
}

func TestTimetableCSVEmpty(t *testing.T) {
	out, err := TimetableCSV(nil)
	require.NoError(t, err)

	// Headers only.
	assert.Equal(t, "Dia,Inicio,Fin,Materia,Seccion,Tipo,Profesor,Aula,Programa\n", string(out))
}

func TestTimetablePDF(t *testing.T) {
	out, err := TimetablePDF("2026-1", sampleEntries())
	require.NoError(t, err)

	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
