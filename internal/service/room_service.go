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

type roomRepository interface {
	List(ctx context.Context, filter models.RoomFilter) ([]models.Room, int, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// RoomService manages the room master data.
type RoomService struct {
	repo     roomRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRoomService wires the room dependencies.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validate: validate, logger: logger}
}

// List returns a filtered page of rooms.
func (s *RoomService) List(ctx context.Context, query dto.ListRoomsQuery) ([]models.Room, *models.Pagination, error) {
	query.Normalize()
	rooms, total, err := s.repo.List(ctx, models.RoomFilter{
		Search:    query.Search,
		Category:  query.Category,
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}
	return rooms, &models.Pagination{Page: query.Page, PageSize: query.PageSize, TotalCount: total}, nil
}

// Get fetches one room.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.FromError(err)
	}
	return room, nil
}

// Create registers a room.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	resources, err := normalizeJSON(req.Resources, "[]")
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "resources must be valid JSON")
	}

	room := &models.Room{
		Code:      req.Code,
		Category:  req.Category,
		Capacity:  req.Capacity,
		Location:  req.Location,
		Resources: resources,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("room created", zap.String("room_id", room.ID), zap.String("code", room.Code))
	return room, nil
}

// Update applies a partial update to a room.
func (s *RoomService) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (*models.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		room.Code = *req.Code
	}
	if req.Category != nil {
		room.Category = *req.Category
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = req.Location
	}
	if req.Resources != nil {
		resources, err := normalizeJSON(req.Resources, "[]")
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "resources must be valid JSON")
		}
		room.Resources = resources
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, appErrors.FromError(err)
	}
	return room, nil
}

// Delete removes a room.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.FromError(err)
	}
	return nil
}
