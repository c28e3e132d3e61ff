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

func professorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "first_name", "last_name", "specialty", "max_weekly_hours", "availability", "created_at", "updated_at"}).
		AddRow("p1", "Ana", "Rojas", nil, 20, []byte(`{"LUN":["08:00-12:00"]}`), time.Now(), time.Now())
}

func TestProfessorRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, first_name, last_name, specialty, max_weekly_hours, availability, created_at, updated_at FROM professors WHERE 1=1 ORDER BY last_name ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(professorRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM professors WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	professors, total, err := repo.List(context.Background(), models.ProfessorFilter{})
	require.NoError(t, err)
	require.Len(t, professors, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Ana Rojas", professors[0].FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM professors ORDER BY last_name ASC, first_name ASC")).
		WillReturnRows(professorRows())

	professors, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, professors, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfessorRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfessorRepository(db)

	mock.ExpectExec("INSERT INTO professors").
		WithArgs(sqlmock.AnyArg(), "Ana", "Rojas", sqlmock.AnyArg(), 20, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	professor := &models.Professor{FirstName: "Ana", LastName: "Rojas", MaxWeeklyHours: 20}
	require.NoError(t, repo.Create(context.Background(), professor))
	assert.NotEmpty(t, professor.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
