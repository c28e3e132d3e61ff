package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
)

type stubVersionRepo struct {
	byID  map[string]*models.TimetableVersion
	saved []*models.TimetableVersion
}

func (s *stubVersionRepo) List(ctx context.Context, period string, page, size int) ([]models.TimetableVersion, int, error) {
	return nil, 0, nil
}

func (s *stubVersionRepo) FindByID(ctx context.Context, id string) (*models.TimetableVersion, error) {
	if v, ok := s.byID[id]; ok {
		return v, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubVersionRepo) Create(ctx context.Context, exec sqlx.ExtContext, version *models.TimetableVersion) error {
	version.ID = "v1"
	s.saved = append(s.saved, version)
	return nil
}

func (s *stubVersionRepo) Delete(ctx context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

type stubVersionEntrySource struct {
	current []models.TimetableEntry
	deleted []string
	created []models.TimetableEntry
}

func (s *stubVersionEntrySource) ListByPeriod(ctx context.Context, period string) ([]models.TimetableEntry, error) {
	return s.current, nil
}

func (s *stubVersionEntrySource) DeleteByPeriod(ctx context.Context, exec sqlx.ExtContext, period string) error {
	s.deleted = append(s.deleted, period)
	return nil
}

func (s *stubVersionEntrySource) CreateBatch(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error {
	s.created = append(s.created, entries...)
	return nil
}

func snapshotPayload(t *testing.T, entries []models.VersionEntry) []byte {
	payload, err := json.Marshal(entries)
	require.NoError(t, err)
	return payload
}

func TestVersionServiceSave(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &stubVersionRepo{byID: map[string]*models.TimetableVersion{}}
	entries := &stubVersionEntrySource{current: []models.TimetableEntry{{
		ProfessorID: "p1", SubjectID: "s1", RoomID: "r1",
		Day: "LUN", StartTime: "08:00:00", EndTime: "10:00:00",
		ClassKind: models.ClassKindLecture, Section: "S1", Period: "2026-1", Program: "TEL",
	}}}
	svc := NewVersionService(repo, entries, sqlx.NewDb(db, "sqlmock"), nil, nil)

	version, err := svc.Save(context.Background(), dto.SaveVersionRequest{Name: "antes del ajuste", Period: "2026-1"})
	require.NoError(t, err)

	assert.Equal(t, "v1", version.ID)
	assert.Equal(t, "antes del ajuste", version.Name)

	var snapshot []models.VersionEntry
	require.NoError(t, json.Unmarshal(version.Entries, &snapshot))
	require.Len(t, snapshot, 1)
	assert.Equal(t, "p1", snapshot[0].ProfessorID)
}

func TestVersionServiceRestoreSkipsBrokenRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	good := models.VersionEntry{
		ProfessorID: "p1", SubjectID: "s1", RoomID: "r1",
		Day: "LUN", StartTime: "08:00:00", EndTime: "10:00:00",
		ClassKind: models.ClassKindLecture, Section: "S1", Period: "2026-1", Program: "TEL",
	}
	broken := good
	broken.Day = "XXX"

	repo := &stubVersionRepo{byID: map[string]*models.TimetableVersion{
		"v1": {ID: "v1", Period: "2026-1", Entries: snapshotPayload(t, []models.VersionEntry{good, broken})},
	}}
	entries := &stubVersionEntrySource{}
	cache := &stubInvalidator{}
	svc := NewVersionService(repo, entries, sqlx.NewDb(db, "sqlmock"), cache, nil)

	restored, rowErrors, err := svc.Restore(context.Background(), "v1")
	require.NoError(t, err)

	assert.Equal(t, 1, restored)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0], "row 1")
	assert.Equal(t, []string{"2026-1"}, entries.deleted)
	require.Len(t, entries.created, 1)
	assert.Equal(t, "p1", entries.created[0].ProfessorID)
	assert.Equal(t, []string{"2026-1"}, cache.periods)
	assert.NoError(t, mock.ExpectationsWereMet())
}
