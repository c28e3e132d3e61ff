package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/opt-telecom/horarios-api/internal/models"
)

// VersionRepository manages persistence for timetable snapshots.
type VersionRepository struct {
	db *sqlx.DB
}

// NewVersionRepository constructs a VersionRepository.
func NewVersionRepository(db *sqlx.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

func (r *VersionRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

const versionColumns = "id, name, period, entries, created_at"

// List returns snapshots, newest first, along with total count.
func (r *VersionRepository) List(ctx context.Context, period string, page, size int) ([]models.TimetableVersion, int, error) {
	base := "FROM timetable_versions WHERE 1=1"
	var args []interface{}
	if period != "" {
		base += fmt.Sprintf(" AND period = $%d", len(args)+1)
		args = append(args, period)
	}

	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", versionColumns, base, size, (page-1)*size)
	var versions []models.TimetableVersion
	if err := r.db.SelectContext(ctx, &versions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list timetable versions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count timetable versions: %w", err)
	}
	return versions, total, nil
}

// FindByID fetches a snapshot by ID.
func (r *VersionRepository) FindByID(ctx context.Context, id string) (*models.TimetableVersion, error) {
	query := fmt.Sprintf("SELECT %s FROM timetable_versions WHERE id = $1", versionColumns)
	var version models.TimetableVersion
	if err := r.db.GetContext(ctx, &version, query, id); err != nil {
		return nil, err
	}
	return &version, nil
}

// Create inserts a snapshot, optionally inside a transaction so it commits
// together with the generation run it captures.
func (r *VersionRepository) Create(ctx context.Context, exec sqlx.ExtContext, version *models.TimetableVersion) error {
	if version.ID == "" {
		version.ID = uuid.NewString()
	}
	if version.Name == "" {
		version.Name = fmt.Sprintf("%s-%s", version.Period, time.Now().UTC().Format("20060102-150405"))
	}
	version.Name = strings.TrimSpace(version.Name)
	if version.CreatedAt.IsZero() {
		version.CreatedAt = time.Now().UTC()
	}

	target := r.exec(exec)
	const query = `INSERT INTO timetable_versions (id, name, period, entries, created_at)
		VALUES (:id, :name, :period, :entries, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, query, version); err != nil {
		return fmt.Errorf("create timetable version: %w", err)
	}
	return nil
}

// Delete removes a snapshot.
func (r *VersionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM timetable_versions WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete timetable version: %w", err)
	}
	return nil
}
