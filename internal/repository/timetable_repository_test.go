package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func timetableRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "professor_id", "subject_id", "room_id", "day", "start_time", "end_time", "class_kind", "section", "period", "program", "created_at"}).
		AddRow("e1", "p1", "s1", "r1", "LUN", "08:00:00", "10:00:00", "LECTURE", "S1", "2026-1", "TEL", time.Now())
}

func TestTimetableRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, professor_id, subject_id, room_id, day, start_time, end_time, class_kind, section, period, program, created_at FROM timetable_entries WHERE period = $1 AND professor_id = $2 ORDER BY day ASC, start_time ASC LIMIT 100 OFFSET 0")).
		WithArgs("2026-1", "p1").
		WillReturnRows(timetableRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM timetable_entries WHERE period = $1 AND professor_id = $2")).
		WithArgs("2026-1", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	entries, total, err := repo.List(context.Background(), models.TimetableFilter{Period: "2026-1", ProfessorID: "p1"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryListByPeriod(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_entries WHERE period = $1 ORDER BY day ASC, start_time ASC")).
		WithArgs("2026-1").
		WillReturnRows(timetableRows())

	entries, err := repo.ListByPeriod(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryReplacePeriodInTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_entries WHERE period = $1")).
		WithArgs("2026-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO timetable_entries").
		WithArgs(sqlmock.AnyArg(), "p1", "s1", "r1", "LUN", "08:00:00", "10:00:00", "LECTURE", "S1", "2026-1", "TEL", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByPeriod(context.Background(), tx, "2026-1"))
	require.NoError(t, repo.CreateBatch(context.Background(), tx, []models.TimetableEntry{{
		ProfessorID: "p1",
		SubjectID:   "s1",
		RoomID:      "r1",
		Day:         "LUN",
		StartTime:   "08:00:00",
		EndTime:     "10:00:00",
		ClassKind:   models.ClassKindLecture,
		Section:     "S1",
		Period:      "2026-1",
		Program:     "TEL",
	}}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryCreateBatchEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
