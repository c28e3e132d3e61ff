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

// ProfessorRepository manages persistence for professors.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

const professorColumns = "id, first_name, last_name, specialty, max_weekly_hours, availability, created_at, updated_at"

// List returns professors matching filters along with total count.
func (r *ProfessorRepository) List(ctx context.Context, filter models.ProfessorFilter) ([]models.Professor, int, error) {
	base := "FROM professors WHERE 1=1"
	var args []interface{}

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		base += fmt.Sprintf(" AND (LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(COALESCE(specialty, '')) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1)
		args = append(args, search)
	}

	allowedSorts := map[string]string{
		"last_name":  "last_name",
		"first_name": "first_name",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "last_name"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", professorColumns, base, column, order, size, (page-1)*size)
	var professors []models.Professor
	if err := r.db.SelectContext(ctx, &professors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list professors: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count professors: %w", err)
	}
	return professors, total, nil
}

// ListAll returns every professor, for generation snapshots.
func (r *ProfessorRepository) ListAll(ctx context.Context) ([]models.Professor, error) {
	query := fmt.Sprintf("SELECT %s FROM professors ORDER BY last_name ASC, first_name ASC", professorColumns)
	var professors []models.Professor
	if err := r.db.SelectContext(ctx, &professors, query); err != nil {
		return nil, fmt.Errorf("list all professors: %w", err)
	}
	return professors, nil
}

// FindByID fetches a professor by ID.
func (r *ProfessorRepository) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	query := fmt.Sprintf("SELECT %s FROM professors WHERE id = $1", professorColumns)
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, query, id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// Create inserts a new professor record.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	if professor.ID == "" {
		professor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if professor.CreatedAt.IsZero() {
		professor.CreatedAt = now
	}
	professor.UpdatedAt = now

	const query = `INSERT INTO professors (id, first_name, last_name, specialty, max_weekly_hours, availability, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :specialty, :max_weekly_hours, :availability, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, professor); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// Update modifies an existing professor record.
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	professor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE professors SET first_name = :first_name, last_name = :last_name, specialty = :specialty,
		max_weekly_hours = :max_weekly_hours, availability = :availability, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, professor); err != nil {
		return fmt.Errorf("update professor: %w", err)
	}
	return nil
}

// Delete removes a professor record.
func (r *ProfessorRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM professors WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete professor: %w", err)
	}
	return nil
}
