package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type timetableStore interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.TimetableEntry, int, error)
	ListByPeriod(ctx context.Context, period string) ([]models.TimetableEntry, error)
	DeleteByPeriod(ctx context.Context, exec sqlx.ExtContext, period string) error
}

// TimetableService serves committed timetables, with a short-lived cache in
// front of the full-period reads used by exports and the grid view.
type TimetableService struct {
	repo   timetableStore
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTimetableService wires the timetable read side. cache may be nil.
func NewTimetableService(repo timetableStore, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *TimetableService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(period string) string { return "timetable:" + period }

// List returns a filtered page of timetable entries.
func (s *TimetableService) List(ctx context.Context, query dto.ListTimetableQuery) ([]models.TimetableEntry, *models.Pagination, error) {
	query.Normalize()
	entries, total, err := s.repo.List(ctx, models.TimetableFilter{
		Period:      query.Period,
		ProfessorID: query.ProfessorID,
		SubjectID:   query.SubjectID,
		RoomID:      query.RoomID,
		Day:         query.Day,
		Page:        query.Page,
		PageSize:    query.PageSize,
		SortOrder:   query.SortOrder,
	})
	if err != nil {
		return nil, nil, appErrors.FromError(err)
	}
	return entries, &models.Pagination{Page: query.Page, PageSize: query.PageSize, TotalCount: total}, nil
}

// ListByPeriod returns every entry of a period, served from cache when
// fresh.
func (s *TimetableService) ListByPeriod(ctx context.Context, period string) ([]models.TimetableEntry, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey(period)).Bytes()
		if err == nil {
			var cached []models.TimetableEntry
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("timetable cache read failed", zap.String("period", period), zap.Error(err))
		}
	}

	entries, err := s.repo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, cacheKey(period), payload, s.ttl).Err(); err != nil {
				s.logger.Warn("timetable cache write failed", zap.String("period", period), zap.Error(err))
			}
		}
	}
	return entries, nil
}

// Clear removes every committed entry of a period. Snapshots saved before
// the clear keep their copies.
func (s *TimetableService) Clear(ctx context.Context, period string) error {
	if err := s.repo.DeleteByPeriod(ctx, nil, period); err != nil {
		return appErrors.FromError(err)
	}
	s.Invalidate(ctx, period)
	s.logger.Info("timetable cleared", zap.String("period", period))
	return nil
}

// Invalidate drops the cached timetable of a period after it changes.
func (s *TimetableService) Invalidate(ctx context.Context, period string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(period)).Err(); err != nil {
		s.logger.Warn("timetable cache invalidation failed", zap.String("period", period), zap.Error(err))
	}
}
