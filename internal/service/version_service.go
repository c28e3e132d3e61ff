package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	"github.com/opt-telecom/horarios-api/internal/timetable"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type versionRepository interface {
	List(ctx context.Context, period string, page, size int) ([]models.TimetableVersion, int, error)
	FindByID(ctx context.Context, id string) (*models.TimetableVersion, error)
	Create(ctx context.Context, exec sqlx.ExtContext, version *models.TimetableVersion) error
	Delete(ctx context.Context, id string) error
}

type versionEntrySource interface {
	ListByPeriod(ctx context.Context, period string) ([]models.TimetableEntry, error)
	DeleteByPeriod(ctx context.Context, exec sqlx.ExtContext, period string) error
	CreateBatch(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error
}

// VersionService saves, lists and restores timetable snapshots.
type VersionService struct {
	versions versionRepository
	entries  versionEntrySource
	tx       txProvider
	cache    timetableCacheInvalidator
	logger   *zap.Logger
}

// NewVersionService wires the snapshot dependencies. cache may be nil.
func NewVersionService(versions versionRepository, entries versionEntrySource, tx txProvider, cache timetableCacheInvalidator, logger *zap.Logger) *VersionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VersionService{versions: versions, entries: entries, tx: tx, cache: cache, logger: logger}
}

// Save snapshots the current timetable of a period under a name.
func (s *VersionService) Save(ctx context.Context, req dto.SaveVersionRequest) (*models.TimetableVersion, error) {
	current, err := s.entries.ListByPeriod(ctx, req.Period)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	snapshot := make([]models.VersionEntry, 0, len(current))
	for _, e := range current {
		snapshot = append(snapshot, models.VersionEntry{
			ProfessorID: e.ProfessorID,
			SubjectID:   e.SubjectID,
			RoomID:      e.RoomID,
			Day:         e.Day,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			ClassKind:   e.ClassKind,
			Section:     e.Section,
			Period:      e.Period,
			Program:     e.Program,
		})
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, appErrors.FromError(fmt.Errorf("marshal snapshot: %w", err))
	}

	version := &models.TimetableVersion{Name: req.Name, Period: req.Period, Entries: payload}
	if err := s.versions.Create(ctx, nil, version); err != nil {
		return nil, appErrors.FromError(err)
	}
	return version, nil
}

// List returns snapshots, newest first.
func (s *VersionService) List(ctx context.Context, query dto.ListVersionsQuery) ([]models.TimetableVersion, *models.Pagination, error) {
	query.Normalize()
	versions, total, err := s.versions.List(ctx, query.Period, query.Page, query.PageSize)
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}
	return versions, &models.Pagination{Page: query.Page, PageSize: query.PageSize, TotalCount: total}, nil
}

// Get fetches one snapshot.
func (s *VersionService) Get(ctx context.Context, id string) (*models.TimetableVersion, error) {
	version, err := s.versions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable version not found")
		}
		return nil, appErrors.FromError(err)
	}
	return version, nil
}

// Restore replaces the period's current timetable with the snapshot's
// entries in one transaction. Rows that no longer parse are skipped and
// reported individually; the valid rows are still restored.
func (s *VersionService) Restore(ctx context.Context, id string) (int, []string, error) {
	version, err := s.Get(ctx, id)
	if err != nil {
		return 0, nil, err
	}

	var snapshot []models.VersionEntry
	if err := json.Unmarshal(version.Entries, &snapshot); err != nil {
		return 0, nil, appErrors.Clone(appErrors.ErrValidation, "snapshot payload is unreadable")
	}

	restored := make([]models.TimetableEntry, 0, len(snapshot))
	var rowErrors []string
	for i, e := range snapshot {
		if err := validateSnapshotRow(e); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		restored = append(restored, models.TimetableEntry{
			ProfessorID: e.ProfessorID,
			SubjectID:   e.SubjectID,
			RoomID:      e.RoomID,
			Day:         e.Day,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			ClassKind:   e.ClassKind,
			Section:     e.Section,
			Period:      version.Period,
			Program:     e.Program,
		})
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return 0, nil, appErrors.FromError(fmt.Errorf("begin restore tx: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.entries.DeleteByPeriod(ctx, tx, version.Period); err != nil {
		return 0, nil, appErrors.FromError(err)
	}
	if err := s.entries.CreateBatch(ctx, tx, restored); err != nil {
		return 0, nil, appErrors.FromError(err)
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, appErrors.FromError(fmt.Errorf("commit restore tx: %w", err))
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, version.Period)
	}
	s.logger.Info("timetable version restored",
		zap.String("version_id", version.ID),
		zap.String("period", version.Period),
		zap.Int("entries", len(restored)),
		zap.Int("skipped", len(rowErrors)))
	return len(restored), rowErrors, nil
}

func validateSnapshotRow(e models.VersionEntry) error {
	if e.ProfessorID == "" || e.SubjectID == "" || e.RoomID == "" {
		return errors.New("missing professor, subject or room")
	}
	if !timetable.ValidDay(e.Day) {
		return fmt.Errorf("unknown day %q", e.Day)
	}
	start, err := timetable.ParseClock(e.StartTime)
	if err != nil {
		return err
	}
	end, err := timetable.ParseClock(e.EndTime)
	if err != nil {
		return err
	}
	if !(timetable.Interval{Start: start, End: end}).Valid() {
		return errors.New("start not before end")
	}
	return nil
}

// Delete removes a snapshot.
func (s *VersionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.versions.Delete(ctx, id); err != nil {
		return appErrors.FromError(err)
	}
	return nil
}
