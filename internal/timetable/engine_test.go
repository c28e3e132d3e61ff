package timetable

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/models"
)

func testProfessor(id string, maxHours int, availability string) models.Professor {
	p := models.Professor{ID: id, FirstName: "Prof", LastName: id, MaxWeeklyHours: maxHours}
	if availability != "" {
		p.Availability = types.JSONText(availability)
	}
	return p
}

func testSubject(id, name string, lecture, practice, lab, sections int) models.Subject {
	return models.Subject{
		ID:            id,
		Name:          name,
		LectureHours:  lecture,
		PracticeHours: practice,
		LabHours:      lab,
		Sections:      sections,
		Program:       "TEL",
	}
}

func testRoom(id, code string) models.Room {
	return models.Room{ID: id, Code: code, Category: "Teorica", Capacity: 40}
}

func testConfig() Config {
	return Config{Seed: 42}
}

func TestEngineRunPlacesAllDemand(t *testing.T) {
	engine := New(testConfig(), nil)
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 4, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Shortfalls)
	assert.Empty(t, result.Outcomes)

	total := 0
	for _, e := range result.Entries {
		assert.Equal(t, "2026-1", e.Period)
		assert.Equal(t, models.ClassKindLecture, e.Kind)
		assert.Equal(t, "S1", e.Section)
		total += e.Interval.Duration()
	}
	assert.Equal(t, 4*60, total)
}

func TestEngineRunNeverDoubleBooks(t *testing.T) {
	engine := New(testConfig(), nil)
	result, err := engine.Run(context.Background(), Input{
		Period: "2026-1",
		Professors: []models.Professor{
			testProfessor("p1", 0, ""),
			testProfessor("p2", 0, ""),
		},
		Subjects: []models.Subject{
			testSubject("s1", "Redes I", 4, 2, 0, 2),
			testSubject("s2", "Telefonia", 4, 0, 2, 1),
			testSubject("s3", "Antenas", 2, 2, 2, 1),
		},
		Rooms: []models.Room{testRoom("r1", "A-101"), testRoom("r2", "A-102")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Entries)

	for i, a := range result.Entries {
		for _, b := range result.Entries[i+1:] {
			if a.Day != b.Day || !a.Interval.Overlaps(b.Interval) {
				continue
			}
			assert.NotEqual(t, a.ProfessorID, b.ProfessorID, "professor double-booked")
			assert.NotEqual(t, a.RoomID, b.RoomID, "room double-booked")
			if a.SubjectID == b.SubjectID {
				assert.NotEqual(t, a.Section, b.Section, "section double-booked")
			}
		}
	}
}

func TestEngineRunHonorsLoadCap(t *testing.T) {
	engine := New(testConfig(), nil)
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 2, "")},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 4, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
	})
	require.NoError(t, err)

	total := 0
	for _, e := range result.Entries {
		total += e.Interval.Duration()
	}
	assert.Equal(t, 2*60, total)

	require.Len(t, result.Shortfalls, 1)
	assert.Equal(t, "s1", result.Shortfalls[0].SubjectID)
	assert.Equal(t, 2, result.Shortfalls[0].MissingHours)
}

func TestEngineRunFailsClosedOnBadAvailability(t *testing.T) {
	engine := New(testConfig(), nil)
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, `{"LUN": not json`)},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 2, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Entries)
	require.Len(t, result.Shortfalls, 1)
	assert.Equal(t, 2, result.Shortfalls[0].MissingHours)
	assert.NotEmpty(t, result.Warnings)
}

func TestEngineRunRespectsRoomBlackout(t *testing.T) {
	cfg := testConfig()
	cfg.Days = []string{Monday}
	engine := New(cfg, nil)
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 2, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
		Restrictions: []models.Restriction{{
			ID:        "x1",
			Kind:      models.RestrictionRoomUnavailable,
			Day:       Monday,
			RoomID:    strPtr("r1"),
			StartTime: strPtr("08:00"),
			EndTime:   strPtr("18:00"),
		}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	require.Len(t, result.Shortfalls, 1)
}

func TestEngineRunRespectsSubjectRoomBar(t *testing.T) {
	cfg := testConfig()
	cfg.Days = []string{Monday}
	engine := New(cfg, nil)
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 2, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
		Restrictions: []models.Restriction{{
			ID:        "x1",
			Kind:      models.RestrictionSubjectNotInRoom,
			Day:       Monday,
			SubjectID: strPtr("s1"),
			RoomID:    strPtr("r1"),
		}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	require.Len(t, result.Shortfalls, 1)
}

func TestEngineRunRoutesLabHoursToQualifyingRoom(t *testing.T) {
	engine := New(testConfig(), nil)
	subj := testSubject("s1", "Redes I", 0, 0, 4, 1)
	subj.RoomRequirement = types.JSONText(`{"tipo_aula": "Laboratorio", "recursos_minimos": ["Computadoras"]}`)

	lab := testRoom("r9", "LAB-201")
	lab.Category = "Laboratorio"
	lab.Resources = types.JSONText(`["Computadoras", "Proyector"]`)
	bareLab := testRoom("r2", "LAB-202")
	bareLab.Category = "Laboratorio"

	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{subj},
		Rooms:      []models.Room{testRoom("r1", "A-101"), bareLab, lab},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Shortfalls)
	require.NotEmpty(t, result.Entries)
	total := 0
	for _, e := range result.Entries {
		assert.Equal(t, "r9", e.RoomID)
		assert.Equal(t, models.ClassKindLab, e.Kind)
		total += e.Interval.Duration()
	}
	assert.Equal(t, 4*60, total)
}

func TestEngineRunReportsUnstaffedSubjects(t *testing.T) {
	engine := New(testConfig(), nil)
	subj := testSubject("s1", "Redes I", 2, 0, 0, 1)
	subj.QualifiedProfessorIDs = []string{"p9"}
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{subj},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	require.Len(t, result.Shortfalls, 1)
	assert.Contains(t, result.Warnings[len(result.Warnings)-1], "no qualified professors")
}

func TestEngineRunRequestPhase(t *testing.T) {
	newRequest := func(id, prof, room, day, start, end string) models.ClassRequest {
		return models.ClassRequest{
			ID:          id,
			SubjectID:   "s1",
			ProfessorID: prof,
			RoomID:      strPtr(room),
			Day:         strPtr(day),
			StartTime:   strPtr(start),
			EndTime:     strPtr(end),
			ClassKind:   models.ClassKindLecture,
			Section:     "S1",
			Period:      "2026-1",
		}
	}

	t.Run("accepted suggestion is committed verbatim", func(t *testing.T) {
		engine := New(testConfig(), nil)
		result, err := engine.Run(context.Background(), Input{
			Period:     "2026-1",
			Professors: []models.Professor{testProfessor("p1", 0, "")},
			Subjects:   []models.Subject{testSubject("s1", "Redes I", 0, 0, 0, 1)},
			Rooms:      []models.Room{testRoom("r1", "A-101")},
			Requests:   []models.ClassRequest{newRequest("q1", "p1", "r1", "MAR", "10:00", "12:00")},
		})
		require.NoError(t, err)

		require.Len(t, result.Outcomes, 1)
		assert.Equal(t, models.ClassRequestAssigned, result.Outcomes[0].State)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "MAR", result.Entries[0].Day)
		assert.Equal(t, Interval{Start: 10 * 60, End: 12 * 60}, result.Entries[0].Interval)
		assert.Equal(t, "r1", result.Entries[0].RoomID)
	})

	t.Run("conflicting suggestion fails without retry", func(t *testing.T) {
		engine := New(testConfig(), nil)
		result, err := engine.Run(context.Background(), Input{
			Period: "2026-1",
			Professors: []models.Professor{
				testProfessor("p1", 0, ""),
				testProfessor("p2", 0, ""),
			},
			Subjects: []models.Subject{testSubject("s1", "Redes I", 0, 0, 0, 2)},
			Rooms:    []models.Room{testRoom("r1", "A-101"), testRoom("r2", "A-102")},
			Requests: []models.ClassRequest{
				newRequest("q1", "p1", "r1", "MAR", "10:00", "12:00"),
				func() models.ClassRequest {
					q := newRequest("q2", "p2", "r1", "MAR", "10:00", "12:00")
					q.Section = "S2"
					return q
				}(),
			},
		})
		require.NoError(t, err)

		require.Len(t, result.Outcomes, 2)
		assert.Equal(t, models.ClassRequestAssigned, result.Outcomes[0].State)
		assert.Equal(t, models.ClassRequestFailed, result.Outcomes[1].State)
		assert.Equal(t, ReasonRoomBusy, result.Outcomes[1].Reason)
		// The rejected request is not placed anywhere else.
		require.Len(t, result.Entries, 1)
	})

	t.Run("dangling references become errors", func(t *testing.T) {
		engine := New(testConfig(), nil)
		result, err := engine.Run(context.Background(), Input{
			Period:     "2026-1",
			Professors: []models.Professor{testProfessor("p1", 0, "")},
			Subjects:   []models.Subject{testSubject("s1", "Redes I", 0, 0, 0, 1)},
			Rooms:      []models.Room{testRoom("r1", "A-101")},
			Requests: []models.ClassRequest{
				newRequest("q1", "p9", "r1", "MAR", "10:00", "12:00"),
				{ID: "q2", SubjectID: "s1", ProfessorID: "p1", ClassKind: models.ClassKindLecture, Section: "S1"},
			},
		})
		require.NoError(t, err)

		require.Len(t, result.Outcomes, 2)
		assert.Equal(t, models.ClassRequestError, result.Outcomes[0].State)
		assert.Equal(t, models.ClassRequestError, result.Outcomes[1].State)
		assert.Empty(t, result.Entries)
	})

	t.Run("suggestion outside availability fails", func(t *testing.T) {
		engine := New(testConfig(), nil)
		result, err := engine.Run(context.Background(), Input{
			Period:     "2026-1",
			Professors: []models.Professor{testProfessor("p1", 0, `{"LUN":["08:00-12:00"]}`)},
			Subjects:   []models.Subject{testSubject("s1", "Redes I", 0, 0, 0, 1)},
			Rooms:      []models.Room{testRoom("r1", "A-101")},
			Requests:   []models.ClassRequest{newRequest("q1", "p1", "r1", "MAR", "10:00", "12:00")},
		})
		require.NoError(t, err)

		require.Len(t, result.Outcomes, 1)
		assert.Equal(t, models.ClassRequestFailed, result.Outcomes[0].State)
		assert.Equal(t, ReasonUnavailable, result.Outcomes[0].Reason)
	})
}

func TestEngineRunCountsRequestHoursAgainstDemand(t *testing.T) {
	engine := New(testConfig(), nil)
	result, err := engine.Run(context.Background(), Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 2, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
		Requests: []models.ClassRequest{{
			ID:          "q1",
			SubjectID:   "s1",
			ProfessorID: "p1",
			RoomID:      strPtr("r1"),
			Day:         strPtr("LUN"),
			StartTime:   strPtr("08:00"),
			EndTime:     strPtr("10:00"),
			ClassKind:   models.ClassKindLecture,
			Section:     "S1",
		}},
	})
	require.NoError(t, err)

	// The assigned request covers the whole lecture bucket, so the fill
	// phase places nothing more.
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, models.ClassRequestAssigned, result.Outcomes[0].State)
	assert.Len(t, result.Entries, 1)
	assert.Empty(t, result.Shortfalls)
}

func TestEngineRunIsReproducibleWithSeed(t *testing.T) {
	input := Input{
		Period: "2026-1",
		Professors: []models.Professor{
			testProfessor("p1", 0, ""),
			testProfessor("p2", 0, ""),
		},
		Subjects: []models.Subject{
			testSubject("s1", "Redes I", 4, 2, 0, 1),
			testSubject("s2", "Telefonia", 4, 0, 0, 1),
		},
		Rooms: []models.Room{testRoom("r1", "A-101"), testRoom("r2", "A-102")},
	}

	first, err := New(Config{Seed: 7}, nil).Run(context.Background(), input)
	require.NoError(t, err)
	second, err := New(Config{Seed: 7}, nil).Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.Shortfalls, second.Shortfalls)
}

func TestEngineRunRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Days: []string{"MONDAY"}}, nil).Run(context.Background(), Input{})
	assert.Error(t, err)

	_, err = New(Config{DayStart: 10 * 60, DayEnd: 8 * 60}, nil).Run(context.Background(), Input{})
	assert.Error(t, err)
}

func TestEngineRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testConfig(), nil).Run(ctx, Input{
		Period:     "2026-1",
		Professors: []models.Professor{testProfessor("p1", 0, "")},
		Subjects:   []models.Subject{testSubject("s1", "Redes I", 2, 0, 0, 1)},
		Rooms:      []models.Room{testRoom("r1", "A-101")},
	})
	assert.ErrorIs(t, err, context.Canceled)
}
