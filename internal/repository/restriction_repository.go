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

// RestrictionRepository manages persistence for blackout rules.
type RestrictionRepository struct {
	db *sqlx.DB
}

// NewRestrictionRepository constructs a RestrictionRepository.
func NewRestrictionRepository(db *sqlx.DB) *RestrictionRepository {
	return &RestrictionRepository{db: db}
}

const restrictionColumns = "id, name, kind, day, start_time, end_time, professor_id, room_id, subject_id, description, created_at, updated_at"

// List returns restrictions matching filters along with total count.
func (r *RestrictionRepository) List(ctx context.Context, filter models.RestrictionFilter) ([]models.Restriction, int, error) {
	base := "FROM restrictions WHERE 1=1"
	var args []interface{}

	if filter.Kind != "" {
		base += fmt.Sprintf(" AND kind = $%d", len(args)+1)
		args = append(args, filter.Kind)
	}
	if filter.Day != "" {
		base += fmt.Sprintf(" AND day = $%d", len(args)+1)
		args = append(args, filter.Day)
	}

	allowedSorts := map[string]string{
		"name":       "name",
		"kind":       "kind",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", restrictionColumns, base, column, order, size, (page-1)*size)
	var restrictions []models.Restriction
	if err := r.db.SelectContext(ctx, &restrictions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list restrictions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count restrictions: %w", err)
	}
	return restrictions, total, nil
}

// ListAll returns every restriction, for generation snapshots.
func (r *RestrictionRepository) ListAll(ctx context.Context) ([]models.Restriction, error) {
	query := fmt.Sprintf("SELECT %s FROM restrictions ORDER BY created_at ASC", restrictionColumns)
	var restrictions []models.Restriction
	if err := r.db.SelectContext(ctx, &restrictions, query); err != nil {
		return nil, fmt.Errorf("list all restrictions: %w", err)
	}
	return restrictions, nil
}

// FindByID fetches a restriction by ID.
func (r *RestrictionRepository) FindByID(ctx context.Context, id string) (*models.Restriction, error) {
	query := fmt.Sprintf("SELECT %s FROM restrictions WHERE id = $1", restrictionColumns)
	var restriction models.Restriction
	if err := r.db.GetContext(ctx, &restriction, query, id); err != nil {
		return nil, err
	}
	return &restriction, nil
}

// Create inserts a new restriction record.
func (r *RestrictionRepository) Create(ctx context.Context, restriction *models.Restriction) error {
	if restriction.ID == "" {
		restriction.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if restriction.CreatedAt.IsZero() {
		restriction.CreatedAt = now
	}
	restriction.UpdatedAt = now

	const query = `INSERT INTO restrictions (id, name, kind, day, start_time, end_time, professor_id, room_id, subject_id, description, created_at, updated_at)
		VALUES (:id, :name, :kind, :day, :start_time, :end_time, :professor_id, :room_id, :subject_id, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, restriction); err != nil {
		return fmt.Errorf("create restriction: %w", err)
	}
	return nil
}

// Delete removes a restriction record.
func (r *RestrictionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM restrictions WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete restriction: %w", err)
	}
	return nil
}
