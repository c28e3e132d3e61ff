package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	"github.com/opt-telecom/horarios-api/internal/timetable"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type classRequestStore interface {
	List(ctx context.Context, filter models.ClassRequestFilter) ([]models.ClassRequest, int, error)
	FindByID(ctx context.Context, id string) (*models.ClassRequest, error)
	Create(ctx context.Context, request *models.ClassRequest) error
	UpdateState(ctx context.Context, exec sqlx.ExtContext, id string, state models.ClassRequestState) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, period string) (int64, error)
}

// ClassRequestService manages teaching requests and their lifecycle.
type ClassRequestService struct {
	repo     classRequestStore
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClassRequestService wires the teaching request dependencies.
func NewClassRequestService(repo classRequestStore, validate *validator.Validate, logger *zap.Logger) *ClassRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassRequestService{repo: repo, validate: validate, logger: logger}
}

// List returns a filtered page of teaching requests.
func (s *ClassRequestService) List(ctx context.Context, query dto.ListClassRequestsQuery) ([]models.ClassRequest, *models.Pagination, error) {
	query.Normalize()
	requests, total, err := s.repo.List(ctx, models.ClassRequestFilter{
		State:     query.State,
		Period:    query.Period,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}
	return requests, &models.Pagination{Page: query.Page, PageSize: query.PageSize, TotalCount: total}, nil
}

// Get fetches one teaching request.
func (s *ClassRequestService) Get(ctx context.Context, id string) (*models.ClassRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class request not found")
		}
		return nil, appErrors.FromError(err)
	}
	return request, nil
}

// Create files one teaching request. The suggested slot must be complete
// and parseable; the generator validates it but never invents a slot for an
// incomplete request.
func (s *ClassRequestService) Create(ctx context.Context, req dto.CreateClassRequestRequest) (*models.ClassRequest, error) {
	request, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("class request filed",
		zap.String("request_id", request.ID),
		zap.String("subject_id", request.SubjectID),
		zap.String("period", request.Period))
	return request, nil
}

// CreateBulk files several teaching requests and reports per-item results.
// Valid items are persisted even when others fail.
func (s *ClassRequestService) CreateBulk(ctx context.Context, req dto.BulkCreateClassRequestsRequest) ([]dto.BulkClassRequestResult, bool, error) {
	results := make([]dto.BulkClassRequestResult, 0, len(req.Items))
	failed := false
	for i, item := range req.Items {
		request, err := s.Create(ctx, item)
		if err != nil {
			failed = true
			results = append(results, dto.BulkClassRequestResult{Index: i, Error: appErrors.FromError(err).Message})
			continue
		}
		results = append(results, dto.BulkClassRequestResult{Index: i, ID: request.ID})
	}
	return results, failed, nil
}

// Cancel moves a PENDING request to CANCELLED so the generator skips it.
func (s *ClassRequestService) Cancel(ctx context.Context, id string) (*models.ClassRequest, error) {
	request, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.State != models.ClassRequestPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only pending requests can be cancelled")
	}
	if err := s.repo.UpdateState(ctx, nil, id, models.ClassRequestCancelled); err != nil {
		return nil, appErrors.FromError(err)
	}
	request.State = models.ClassRequestCancelled
	return request, nil
}

// DeleteAll removes every teaching request, optionally scoped to one period,
// and returns the number removed.
func (s *ClassRequestService) DeleteAll(ctx context.Context, period string) (int64, error) {
	count, err := s.repo.DeleteAll(ctx, period)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	s.logger.Info("class requests cleared",
		zap.String("period", period),
		zap.Int64("removed", count))
	return count, nil
}

// Delete removes a teaching request.
func (s *ClassRequestService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.FromError(err)
	}
	return nil
}

func (s *ClassRequestService) build(req dto.CreateClassRequestRequest) (*models.ClassRequest, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class request payload")
	}

	request := &models.ClassRequest{
		SubjectID:   req.SubjectID,
		ProfessorID: req.ProfessorID,
		RoomID:      req.RoomID,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClassKind:   models.ClassKind(req.ClassKind),
		Section:     req.Section,
		Period:      req.Period,
		Program:     req.Program,
		State:       models.ClassRequestPending,
	}
	if _, err := timetable.DecodeRequest(*request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return request, nil
}
