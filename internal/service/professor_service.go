package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type professorRepository interface {
	List(ctx context.Context, filter models.ProfessorFilter) ([]models.Professor, int, error)
	FindByID(ctx context.Context, id string) (*models.Professor, error)
	Create(ctx context.Context, professor *models.Professor) error
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id string) error
}

// ProfessorService manages the professor master data.
type ProfessorService struct {
	repo     professorRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProfessorService wires the professor dependencies.
func NewProfessorService(repo professorRepository, validate *validator.Validate, logger *zap.Logger) *ProfessorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessorService{repo: repo, validate: validate, logger: logger}
}

// List returns a filtered page of professors.
func (s *ProfessorService) List(ctx context.Context, query dto.ListProfessorsQuery) ([]models.Professor, *models.Pagination, error) {
	query.Normalize()
	professors, total, err := s.repo.List(ctx, models.ProfessorFilter{
		Search:    query.Search,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}
	return professors, &models.Pagination{Page: query.Page, PageSize: query.PageSize, TotalCount: total}, nil
}

// Get fetches one professor.
func (s *ProfessorService) Get(ctx context.Context, id string) (*models.Professor, error) {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, appErrors.FromError(err)
	}
	return professor, nil
}

// Create registers a professor. The availability document only needs to be
// valid JSON here; window semantics are enforced when the generator reads
// it.
func (s *ProfessorService) Create(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	availability, err := normalizeJSON(req.Availability, "{}")
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availability must be valid JSON")
	}

	professor := &models.Professor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialty:      req.Specialty,
		MaxWeeklyHours: req.MaxWeeklyHours,
		Availability:   availability,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("professor created", zap.String("professor_id", professor.ID))
	return professor, nil
}

// Update applies a partial update to a professor.
func (s *ProfessorService) Update(ctx context.Context, id string, req dto.UpdateProfessorRequest) (*models.Professor, error) {
	professor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		professor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		professor.LastName = *req.LastName
	}
	if req.Specialty != nil {
		professor.Specialty = req.Specialty
	}
	if req.MaxWeeklyHours != nil {
		professor.MaxWeeklyHours = *req.MaxWeeklyHours
	}
	if req.Availability != nil {
		availability, err := normalizeJSON(req.Availability, "{}")
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "availability must be valid JSON")
		}
		professor.Availability = availability
	}

	if err := s.repo.Update(ctx, professor); err != nil {
		return nil, appErrors.FromError(err)
	}
	return professor, nil
}

// Delete removes a professor.
func (s *ProfessorService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.FromError(err)
	}
	return nil
}

// normalizeJSON validates a raw document and substitutes a fallback for
// empty input.
func normalizeJSON(raw json.RawMessage, fallback string) (types.JSONText, error) {
	if len(raw) == 0 {
		return types.JSONText(fallback), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("invalid json")
	}
	return types.JSONText(raw), nil
}
