package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opt-telecom/horarios-api/internal/dto"
	"github.com/opt-telecom/horarios-api/internal/models"
	appErrors "github.com/opt-telecom/horarios-api/pkg/errors"
)

type stubClassRequestStore struct {
	byID    map[string]*models.ClassRequest
	created int
	states  map[string]models.ClassRequestState
}

func newStubClassRequestStore() *stubClassRequestStore {
	return &stubClassRequestStore{
		byID:   make(map[string]*models.ClassRequest),
		states: make(map[string]models.ClassRequestState),
	}
}

func (s *stubClassRequestStore) List(ctx context.Context, filter models.ClassRequestFilter) ([]models.ClassRequest, int, error) {
	return nil, 0, nil
}

func (s *stubClassRequestStore) FindByID(ctx context.Context, id string) (*models.ClassRequest, error) {
	request, ok := s.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return request, nil
}

func (s *stubClassRequestStore) Create(ctx context.Context, request *models.ClassRequest) error {
	s.created++
	request.ID = fmt.Sprintf("req-%d", s.created)
	s.byID[request.ID] = request
	return nil
}

func (s *stubClassRequestStore) UpdateState(ctx context.Context, exec sqlx.ExtContext, id string, state models.ClassRequestState) error {
	s.states[id] = state
	return nil
}

func (s *stubClassRequestStore) Delete(ctx context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

func (s *stubClassRequestStore) DeleteAll(ctx context.Context, period string) (int64, error) {
	var removed int64
	for id, request := range s.byID {
		if period == "" || request.Period == period {
			delete(s.byID, id)
			removed++
		}
	}
	return removed, nil
}

func validClassRequest() dto.CreateClassRequestRequest {
	return dto.CreateClassRequestRequest{
		SubjectID:   "0b9f9a84-6b6e-4f3e-9a6a-111111111111",
		ProfessorID: "0b9f9a84-6b6e-4f3e-9a6a-222222222222",
		RoomID:      strPtr("0b9f9a84-6b6e-4f3e-9a6a-333333333333"),
		Day:         strPtr("MAR"),
		StartTime:   strPtr("10:00"),
		EndTime:     strPtr("12:00"),
		ClassKind:   "LECTURE",
		Section:     "S1",
		Period:      "2026-1",
		Program:     "TEL",
	}
}

func TestClassRequestServiceCreate(t *testing.T) {
	store := newStubClassRequestStore()
	svc := NewClassRequestService(store, nil, nil)

	request, err := svc.Create(context.Background(), validClassRequest())
	require.NoError(t, err)

	assert.Equal(t, "req-1", request.ID)
	assert.Equal(t, models.ClassRequestPending, request.State)
}

func TestClassRequestServiceCreateRejectsBackwardSlot(t *testing.T) {
	store := newStubClassRequestStore()
	svc := NewClassRequestService(store, nil, nil)

	payload := validClassRequest()
	payload.StartTime = strPtr("12:00")
	payload.EndTime = strPtr("10:00")

	_, err := svc.Create(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, store.created)
}

func TestClassRequestServiceCreateBulkPartial(t *testing.T) {
	store := newStubClassRequestStore()
	svc := NewClassRequestService(store, nil, nil)

	bad := validClassRequest()
	bad.EndTime = strPtr("9am")

	results, partial, err := svc.CreateBulk(context.Background(), dto.BulkCreateClassRequestsRequest{
		Items: []dto.CreateClassRequestRequest{validClassRequest(), bad, validClassRequest()},
	})
	require.NoError(t, err)

	assert.True(t, partial)
	require.Len(t, results, 3)
	assert.Equal(t, "req-1", results[0].ID)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, "req-2", results[2].ID)
	assert.Equal(t, 2, store.created)
}

func TestClassRequestServiceCancel(t *testing.T) {
	store := newStubClassRequestStore()
	svc := NewClassRequestService(store, nil, nil)

	request, err := svc.Create(context.Background(), validClassRequest())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClassRequestCancelled, cancelled.State)
	assert.Equal(t, models.ClassRequestCancelled, store.states[request.ID])

	// Already cancelled, a second cancel conflicts.
	_, err = svc.Cancel(context.Background(), request.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestClassRequestServiceCancelMissing(t *testing.T) {
	svc := NewClassRequestService(newStubClassRequestStore(), nil, nil)

	_, err := svc.Cancel(context.Background(), "req-404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
