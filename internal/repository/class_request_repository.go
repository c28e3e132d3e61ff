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

// ClassRequestRepository manages persistence for teaching requests.
type ClassRequestRepository struct {
	db *sqlx.DB
}

// NewClassRequestRepository constructs a ClassRequestRepository.
func NewClassRequestRepository(db *sqlx.DB) *ClassRequestRepository {
	return &ClassRequestRepository{db: db}
}

func (r *ClassRequestRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

const classRequestColumns = "id, subject_id, professor_id, room_id, day, start_time, end_time, class_kind, section, period, program, state, created_at, updated_at"

// List returns teaching requests matching filters along with total count.
func (r *ClassRequestRepository) List(ctx context.Context, filter models.ClassRequestFilter) ([]models.ClassRequest, int, error) {
	base := "FROM class_requests WHERE 1=1"
	var args []interface{}

	if filter.State != "" {
		base += fmt.Sprintf(" AND state = $%d", len(args)+1)
		args = append(args, filter.State)
	}
	if filter.Period != "" {
		base += fmt.Sprintf(" AND period = $%d", len(args)+1)
		args = append(args, filter.Period)
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
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at %s LIMIT %d OFFSET %d", classRequestColumns, base, order, size, (page-1)*size)
	var requests []models.ClassRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list class requests: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count class requests: %w", err)
	}
	return requests, total, nil
}

// ListPendingByPeriod returns the PENDING requests of one period in filing
// order. Requests already FAILED or in any other terminal state are never
// picked up again.
func (r *ClassRequestRepository) ListPendingByPeriod(ctx context.Context, period string) ([]models.ClassRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM class_requests WHERE period = $1 AND state = $2 ORDER BY created_at ASC", classRequestColumns)
	var requests []models.ClassRequest
	if err := r.db.SelectContext(ctx, &requests, query, period, models.ClassRequestPending); err != nil {
		return nil, fmt.Errorf("list pending class requests: %w", err)
	}
	return requests, nil
}

// FindByID fetches a teaching request by ID.
func (r *ClassRequestRepository) FindByID(ctx context.Context, id string) (*models.ClassRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM class_requests WHERE id = $1", classRequestColumns)
	var request models.ClassRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// Create inserts a new teaching request in PENDING state.
func (r *ClassRequestRepository) Create(ctx context.Context, request *models.ClassRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.State == "" {
		request.State = models.ClassRequestPending
	}
	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now

	const query = `INSERT INTO class_requests (id, subject_id, professor_id, room_id, day, start_time, end_time, class_kind, section, period, program, state, created_at, updated_at)
		VALUES (:id, :subject_id, :professor_id, :room_id, :day, :start_time, :end_time, :class_kind, :section, :period, :program, :state, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create class request: %w", err)
	}
	return nil
}

// UpdateState moves one request to a new lifecycle state, optionally inside
// a transaction.
func (r *ClassRequestRepository) UpdateState(ctx context.Context, exec sqlx.ExtContext, id string, state models.ClassRequestState) error {
	target := r.exec(exec)
	const query = `UPDATE class_requests SET state = $2, updated_at = $3 WHERE id = $1`
	if _, err := target.ExecContext(ctx, query, id, state, time.Now().UTC()); err != nil {
		return fmt.Errorf("update class request state: %w", err)
	}
	return nil
}

// Delete removes a teaching request.
func (r *ClassRequestRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM class_requests WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete class request: %w", err)
	}
	return nil
}

// DeleteAll removes every teaching request, or only one period's when period
// is non-empty. Returns the number removed.
func (r *ClassRequestRepository) DeleteAll(ctx context.Context, period string) (int64, error) {
	query := "DELETE FROM class_requests"
	var args []interface{}
	if period != "" {
		query += " WHERE period = $1"
		args = append(args, period)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete class requests: %w", err)
	}
	count, _ := res.RowsAffected()
	return count, nil
}
