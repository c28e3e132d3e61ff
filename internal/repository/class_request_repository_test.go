package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/models"
)

func classRequestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "subject_id", "professor_id", "room_id", "day", "start_time", "end_time", "class_kind", "section", "period", "program", "state", "created_at", "updated_at"}).
		AddRow("q1", "s1", "p1", "r1", "LUN", "08:00", "10:00", "LECTURE", "S1", "2026-1", "TEL", "PENDING", time.Now(), time.Now())
}

func TestClassRequestRepositoryListPendingByPeriod(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM class_requests WHERE period = $1 AND state = $2 ORDER BY created_at ASC")).
		WithArgs("2026-1", string(models.ClassRequestPending)).
		WillReturnRows(classRequestRows())

	requests, err := repo.ListPendingByPeriod(context.Background(), "2026-1")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.ClassRequestPending, requests[0].State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRequestRepositoryCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRequestRepository(db)

	mock.ExpectExec("INSERT INTO class_requests").
		WithArgs(sqlmock.AnyArg(), "s1", "p1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "LECTURE", "S1", "2026-1", "TEL", "PENDING", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	request := &models.ClassRequest{
		SubjectID:   "s1",
		ProfessorID: "p1",
		ClassKind:   models.ClassKindLecture,
		Section:     "S1",
		Period:      "2026-1",
		Program:     "TEL",
	}
	require.NoError(t, repo.Create(context.Background(), request))
	assert.Equal(t, models.ClassRequestPending, request.State)
	assert.NotEmpty(t, request.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRequestRepositoryUpdateStateInTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE class_requests SET state = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("q1", string(models.ClassRequestAssigned), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateState(context.Background(), tx, "q1", models.ClassRequestAssigned))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
