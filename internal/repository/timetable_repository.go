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

// TimetableRepository manages persistence for committed timetable entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs a TimetableRepository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

func (r *TimetableRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

const timetableColumns = "id, professor_id, subject_id, room_id, day, start_time, end_time, class_kind, section, period, program, created_at"

// List returns timetable entries matching filters along with total count.
func (r *TimetableRepository) List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, int, error) {
	base := "FROM timetable_entries WHERE period = $1"
	args := []interface{}{filter.Period}

	if filter.ProfessorID != "" {
		base += fmt.Sprintf(" AND professor_id = $%d", len(args)+1)
		args = append(args, filter.ProfessorID)
	}
	if filter.SubjectID != "" {
		base += fmt.Sprintf(" AND subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	if filter.RoomID != "" {
		base += fmt.Sprintf(" AND room_id = $%d", len(args)+1)
		args = append(args, filter.RoomID)
	}
	if filter.Day != "" {
		base += fmt.Sprintf(" AND day = $%d", len(args)+1)
		args = append(args, filter.Day)
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY day %s, start_time %s LIMIT %d OFFSET %d", timetableColumns, base, order, order, size, (page-1)*size)
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list timetable entries: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count timetable entries: %w", err)
	}
	return entries, total, nil
}

// ListByPeriod returns every entry of one period ordered by day and time.
func (r *TimetableRepository) ListByPeriod(ctx context.Context, period string) ([]models.TimetableEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM timetable_entries WHERE period = $1 ORDER BY day ASC, start_time ASC", timetableColumns)
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, period); err != nil {
		return nil, fmt.Errorf("list timetable entries by period: %w", err)
	}
	return entries, nil
}

// DeleteByPeriod removes every entry of one period, optionally inside a
// transaction. Generation replaces the period atomically: the delete and the
// inserts that follow must share one transaction.
func (r *TimetableRepository) DeleteByPeriod(ctx context.Context, exec sqlx.ExtContext, period string) error {
	target := r.exec(exec)
	if _, err := target.ExecContext(ctx, "DELETE FROM timetable_entries WHERE period = $1", period); err != nil {
		return fmt.Errorf("delete timetable entries: %w", err)
	}
	return nil
}

// CreateBatch inserts entries, optionally inside a transaction.
func (r *TimetableRepository) CreateBatch(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `INSERT INTO timetable_entries (id, professor_id, subject_id, room_id, day, start_time, end_time, class_kind, section, period, program, created_at)
		VALUES (:id, :professor_id, :subject_id, :room_id, :day, :start_time, :end_time, :class_kind, :section, :period, :program, :created_at)`

	for i := range entries {
		entry := &entries[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, entry); err != nil {
			return fmt.Errorf("insert timetable entry: %w", err)
		}
	}
	return nil
}
