package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	"github.com/opt-telecom/horarios-api/internal/timetable"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type professorLister interface {
	ListAll(ctx context.Context) ([]models.Professor, error)
}

type subjectLister interface {
	ListAll(ctx context.Context) ([]models.Subject, error)
}

type roomLister interface {
	ListAll(ctx context.Context) ([]models.Room, error)
}

type restrictionLister interface {
	ListAll(ctx context.Context) ([]models.Restriction, error)
}

type requestFeeder interface {
	ListPendingByPeriod(ctx context.Context, period string) ([]models.ClassRequest, error)
	UpdateState(ctx context.Context, exec sqlx.ExtContext, id string, state models.ClassRequestState) error
}

type entryWriter interface {
	DeleteByPeriod(ctx context.Context, exec sqlx.ExtContext, period string) error
	CreateBatch(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error
}

type snapshotWriter interface {
	Create(ctx context.Context, exec sqlx.ExtContext, version *models.TimetableVersion) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type timetableCacheInvalidator interface {
	Invalidate(ctx context.Context, period string)
}

type generationObserver interface {
	ObserveGenerationRun(status string, duration time.Duration)
	SetGenerationStats(entries, shortfalls int)
}

// GenerationService runs the assignment engine over current master data and
// commits the resulting timetable.
type GenerationService struct {
	professors   professorLister
	subjects     subjectLister
	rooms        roomLister
	restrictions restrictionLister
	requests     requestFeeder
	entries      entryWriter
	versions     snapshotWriter
	tx           txProvider
	cache        timetableCacheInvalidator
	metrics      generationObserver
	engineCfg    timetable.Config
	logger       *zap.Logger

	mu      sync.Mutex
	running map[string]bool
}

// NewGenerationService wires the generator dependencies. cache and metrics
// may be nil.
func NewGenerationService(
	professors professorLister,
	subjects subjectLister,
	rooms roomLister,
	restrictions restrictionLister,
	requests requestFeeder,
	entries entryWriter,
	versions snapshotWriter,
	tx txProvider,
	cache timetableCacheInvalidator,
	metrics generationObserver,
	engineCfg timetable.Config,
	logger *zap.Logger,
) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{
		professors:   professors,
		subjects:     subjects,
		rooms:        rooms,
		restrictions: restrictions,
		requests:     requests,
		entries:      entries,
		versions:     versions,
		tx:           tx,
		cache:        cache,
		metrics:      metrics,
		engineCfg:    engineCfg,
		logger:       logger,
		running:      make(map[string]bool),
	}
}

func (s *GenerationService) acquire(period string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[period] {
		return false
	}
	s.running[period] = true
	return true
}

func (s *GenerationService) release(period string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, period)
}

// Generate executes one run for a period: pending requests are validated
// against their suggested slots, remaining weekly demand is filled by
// search, and the period's timetable is replaced in a single transaction
// together with request state changes and a version snapshot. Only one run
// per period may execute at a time.
func (s *GenerationService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	start := time.Now()
	if !s.acquire(req.Period) {
		s.observe("rejected", start)
		return nil, appErrors.ErrRunInFlight
	}
	defer s.release(req.Period)

	input, err := s.loadInput(ctx, req.Period)
	if err != nil {
		s.observe("error", start)
		return nil, err
	}
	if len(input.Professors) == 0 || len(input.Subjects) == 0 || len(input.Rooms) == 0 {
		s.observe("rejected", start)
		return nil, appErrors.ErrNoMasterData
	}

	cfg := s.engineCfg
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	result, err := timetable.New(cfg, s.logger).Run(ctx, input)
	if err != nil {
		s.observe("error", start)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "generation failed")
	}

	entries := toEntryModels(result.Entries)
	versionID, err := s.commit(ctx, req, entries, result.Outcomes)
	if err != nil {
		s.observe("error", start)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, req.Period)
	}
	s.observe("ok", start)
	if s.metrics != nil {
		s.metrics.SetGenerationStats(len(entries), len(result.Shortfalls))
	}

	return &dto.GenerateTimetableResponse{
		Period:        req.Period,
		Seed:          result.Seed,
		EntriesPlaced: len(entries),
		VersionID:     versionID,
		Outcomes:      result.Outcomes,
		Shortfalls:    result.Shortfalls,
		Loads:         result.Loads,
		Warnings:      result.Warnings,
	}, nil
}

func (s *GenerationService) observe(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveGenerationRun(status, time.Since(start))
	}
}

func (s *GenerationService) loadInput(ctx context.Context, period string) (timetable.Input, error) {
	input := timetable.Input{Period: period}
	var err error
	if input.Professors, err = s.professors.ListAll(ctx); err != nil {
		return input, fmt.Errorf("load professors: %w", err)
	}
	if input.Subjects, err = s.subjects.ListAll(ctx); err != nil {
		return input, fmt.Errorf("load subjects: %w", err)
	}
	if input.Rooms, err = s.rooms.ListAll(ctx); err != nil {
		return input, fmt.Errorf("load rooms: %w", err)
	}
	if input.Restrictions, err = s.restrictions.ListAll(ctx); err != nil {
		return input, fmt.Errorf("load restrictions: %w", err)
	}
	if input.Requests, err = s.requests.ListPendingByPeriod(ctx, period); err != nil {
		return input, fmt.Errorf("load pending requests: %w", err)
	}
	return input, nil
}

// commit replaces the period's entries, applies request outcomes and saves a
// snapshot, all inside one transaction. A failure anywhere leaves the
// previous timetable untouched.
func (s *GenerationService) commit(ctx context.Context, req dto.GenerateTimetableRequest, entries []models.TimetableEntry, outcomes []timetable.Outcome) (string, error) {
	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin generation tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.entries.DeleteByPeriod(ctx, tx, req.Period); err != nil {
		return "", err
	}
	if err := s.entries.CreateBatch(ctx, tx, entries); err != nil {
		return "", err
	}
	for _, outcome := range outcomes {
		if err := s.requests.UpdateState(ctx, tx, outcome.RequestID, outcome.State); err != nil {
			return "", err
		}
	}

	version, err := buildSnapshot(req, entries)
	if err != nil {
		return "", err
	}
	if err := s.versions.Create(ctx, tx, version); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit generation tx: %w", err)
	}
	return version.ID, nil
}

func buildSnapshot(req dto.GenerateTimetableRequest, entries []models.TimetableEntry) (*models.TimetableVersion, error) {
	snapshot := make([]models.VersionEntry, 0, len(entries))
	for _, e := range entries {
		snapshot = append(snapshot, models.VersionEntry{
			ProfessorID: e.ProfessorID,
			SubjectID:   e.SubjectID,
			RoomID:      e.RoomID,
			Day:         e.Day,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			ClassKind:   e.ClassKind,
			Section:     e.Section,
			Period:      e.Period,
			Program:     e.Program,
		})
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return &models.TimetableVersion{
		Name:    req.VersionName,
		Period:  req.Period,
		Entries: payload,
	}, nil
}

func toEntryModels(entries []timetable.Entry) []models.TimetableEntry {
	out := make([]models.TimetableEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.TimetableEntry{
			ProfessorID: e.ProfessorID,
			SubjectID:   e.SubjectID,
			RoomID:      e.RoomID,
			Day:         e.Day,
			StartTime:   e.Interval.Start.String(),
			EndTime:     e.Interval.End.String(),
			ClassKind:   e.Kind,
			Section:     e.Section,
			Period:      e.Period,
			Program:     e.Program,
		})
	}
	return out
}
