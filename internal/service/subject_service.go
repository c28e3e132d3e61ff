package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

// SubjectService manages the subject master data.
type SubjectService struct {
	repo     subjectRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSubjectService wires the subject dependencies.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validate: validate, logger: logger}
}

// List returns a filtered page of subjects.
func (s *SubjectService) List(ctx context.Context, query dto.ListSubjectsQuery) ([]models.Subject, *models.Pagination, error) {
	query.Normalize()
	subjects, total, err := s.repo.List(ctx, models.SubjectFilter{
		Search:    query.Search,
		Program:   query.Program,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}
	return subjects, &models.Pagination{Page: query.Page, PageSize: query.PageSize, TotalCount: total}, nil
}

// Get fetches one subject.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.FromError(err)
	}
	return subject, nil
}

// Create registers a subject.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if req.LectureHours+req.PracticeHours+req.LabHours == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject needs at least one weekly hour")
	}
	requirement, err := normalizeJSON(req.RoomRequirement, "{}")
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room_requirement must be valid JSON")
	}

	sections := req.Sections
	if sections < 1 {
		sections = 1
	}
	subject := &models.Subject{
		Name:                  req.Name,
		LectureHours:          req.LectureHours,
		PracticeHours:         req.PracticeHours,
		LabHours:              req.LabHours,
		Sections:              sections,
		Program:               req.Program,
		QualifiedProfessorIDs: req.QualifiedProfessorIDs,
		RoomRequirement:       requirement,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("subject created", zap.String("subject_id", subject.ID), zap.String("name", subject.Name))
	return subject, nil
}

// Update applies a partial update to a subject.
func (s *SubjectService) Update(ctx context.Context, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.LectureHours != nil {
		subject.LectureHours = *req.LectureHours
	}
	if req.PracticeHours != nil {
		subject.PracticeHours = *req.PracticeHours
	}
	if req.LabHours != nil {
		subject.LabHours = *req.LabHours
	}
	if req.Sections != nil {
		subject.Sections = *req.Sections
	}
	if req.Program != nil {
		subject.Program = *req.Program
	}
	if req.QualifiedProfessorIDs != nil {
		subject.QualifiedProfessorIDs = req.QualifiedProfessorIDs
	}
	if req.RoomRequirement != nil {
		requirement, err := normalizeJSON(req.RoomRequirement, "{}")
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "room_requirement must be valid JSON")
		}
		subject.RoomRequirement = requirement
	}
	if subject.LectureHours+subject.PracticeHours+subject.LabHours == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject needs at least one weekly hour")
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, appErrors.FromError(err)
	}
	return subject, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.FromError(err)
	}
	return nil
}
