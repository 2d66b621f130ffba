package lifecycle

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateRequest(ctx context.Context, req *dto.CreateRequestRequest) (*models.ServiceRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockGateway) ListMyRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceRequest), args.Error(1)
}

func (m *mockGateway) ListReceivedRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceRequest), args.Error(1)
}

func (m *mockGateway) RespondRequest(ctx context.Context, id uuid.UUID, decision valueobject.Decision) (*models.ServiceRequest, error) {
	args := m.Called(ctx, id, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockGateway) FinalizeRequest(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockGateway) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGateway) CreateRating(ctx context.Context, requestID uuid.UUID, score int, comment *string) (*models.Rating, error) {
	args := m.Called(ctx, requestID, score, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *mockGateway) ListMyRatings(ctx context.Context) ([]models.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func newTestSession(t *testing.T, user *models.User) *session.Store {
	t.Helper()
	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)
	assert.NoError(t, sess.Set("test-token", user))
	return sess
}

func stubRefresh(gw *mockGateway, mine, received []models.ServiceRequest, ratings []models.Rating) {
	gw.On("ListMyRequests", mock.Anything).Return(mine, nil)
	gw.On("ListReceivedRequests", mock.Anything).Return(received, nil)
	gw.On("ListMyRatings", mock.Anything).Return(ratings, nil)
}

func newRequest(clientID, providerID uuid.UUID, status valueobject.RequestStatus) models.ServiceRequest {
	return models.ServiceRequest{
		ID:           uuid.New(),
		ClientID:     clientID,
		ClientName:   "Иван",
		ProviderID:   providerID,
		ServiceID:    uuid.New(),
		ServiceTitle: "Ремонт ноутбука",
		Message:      "Здравствуйте, нужна диагностика",
		Status:       status,
		CreatedAt:    time.Now(),
	}
}

func TestService_Refresh_MergesAndDeduplicates(t *testing.T) {
	gw := new(mockGateway)
	userID := uuid.New()
	sess := newTestSession(t, &models.User{ID: userID, Name: "Иван"})
	svc := NewService(gw, sess)
	ctx := context.Background()

	mine := newRequest(userID, uuid.New(), valueobject.RequestStatusPending)
	shared := newRequest(userID, uuid.New(), valueobject.RequestStatusAccepted)
	received := newRequest(uuid.New(), userID, valueobject.RequestStatusPending)

	stubRefresh(gw,
		[]models.ServiceRequest{mine, shared},
		[]models.ServiceRequest{shared, received},
		[]models.Rating{{RequestID: shared.ID}},
	)

	assert.NoError(t, svc.Refresh(ctx))

	snapshot := svc.Snapshot()
	assert.Len(t, snapshot, 3)
	assert.Equal(t, mine.ID, snapshot[0].ID)
	assert.Equal(t, shared.ID, snapshot[1].ID)
	assert.Equal(t, received.ID, snapshot[2].ID)
	assert.True(t, svc.Rated()[shared.ID])
}

func TestService_Refresh_Unauthorized(t *testing.T) {
	gw := new(mockGateway)
	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)
	svc := NewService(gw, sess)

	err = svc.Refresh(context.Background())
	assert.True(t, apperror.IsUnauthorized(err))
	gw.AssertNotCalled(t, "ListMyRequests", mock.Anything)
}

func TestService_Get_NotFound(t *testing.T) {
	gw := new(mockGateway)
	sess := newTestSession(t, &models.User{ID: uuid.New()})
	svc := NewService(gw, sess)

	_, err := svc.Get(uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Create_MessageTooLong(t *testing.T) {
	gw := new(mockGateway)
	sess := newTestSession(t, &models.User{ID: uuid.New()})
	svc := NewService(gw, sess)

	long := make([]rune, 2001)
	for i := range long {
		long[i] = 'ж'
	}

	_, err := svc.Create(context.Background(), uuid.New(), string(long))
	assert.True(t, apperror.IsValidation(err))
	gw.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestService_Respond_Accept(t *testing.T) {
	gw := new(mockGateway)
	providerID := uuid.New()
	sess := newTestSession(t, &models.User{ID: providerID, IsProvider: true})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), providerID, valueobject.RequestStatusPending)
	stubRefresh(gw, nil, []models.ServiceRequest{req}, nil)
	assert.NoError(t, svc.Refresh(ctx))

	accepted := req
	accepted.Status = valueobject.RequestStatusAccepted
	gw.On("RespondRequest", mock.Anything, req.ID, valueobject.DecisionAccepted).Return(&accepted, nil)

	updated, err := svc.Respond(ctx, req.ID, valueobject.DecisionAccepted)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusAccepted, updated.Status)
	gw.AssertExpectations(t)
}

func TestService_Respond_AlreadyResolved(t *testing.T) {
	gw := new(mockGateway)
	providerID := uuid.New()
	sess := newTestSession(t, &models.User{ID: providerID, IsProvider: true})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), providerID, valueobject.RequestStatusAccepted)
	stubRefresh(gw, nil, []models.ServiceRequest{req}, nil)
	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Respond(ctx, req.ID, valueobject.DecisionRejected)
	assert.True(t, apperror.IsInvalidTransition(err))
	gw.AssertNotCalled(t, "RespondRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Respond_NotProvider(t *testing.T) {
	gw := new(mockGateway)
	userID := uuid.New()
	sess := newTestSession(t, &models.User{ID: userID})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(userID, uuid.New(), valueobject.RequestStatusPending)
	stubRefresh(gw, []models.ServiceRequest{req}, nil, nil)
	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Respond(ctx, req.ID, valueobject.DecisionAccepted)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestService_Respond_InvalidDecision(t *testing.T) {
	gw := new(mockGateway)
	sess := newTestSession(t, &models.User{ID: uuid.New(), IsProvider: true})
	svc := NewService(gw, sess)

	_, err := svc.Respond(context.Background(), uuid.New(), valueobject.Decision("maybe"))
	assert.True(t, apperror.IsValidation(err))
}

func TestService_Finalize_Accepted(t *testing.T) {
	gw := new(mockGateway)
	providerID := uuid.New()
	sess := newTestSession(t, &models.User{ID: providerID, IsProvider: true})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), providerID, valueobject.RequestStatusAccepted)
	stubRefresh(gw, nil, []models.ServiceRequest{req}, nil)
	assert.NoError(t, svc.Refresh(ctx))

	finalized := req
	finalized.Status = valueobject.RequestStatusFinalized
	gw.On("FinalizeRequest", mock.Anything, req.ID).Return(&finalized, nil)

	updated, err := svc.Finalize(ctx, req.ID)
	assert.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusFinalized, updated.Status)
}

func TestService_Finalize_PendingRejected(t *testing.T) {
	gw := new(mockGateway)
	providerID := uuid.New()
	sess := newTestSession(t, &models.User{ID: providerID, IsProvider: true})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), providerID, valueobject.RequestStatusPending)
	stubRefresh(gw, nil, []models.ServiceRequest{req}, nil)
	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Finalize(ctx, req.ID)
	assert.ErrorIs(t, err, apperror.ErrNotAccepted)
	gw.AssertNotCalled(t, "FinalizeRequest", mock.Anything, mock.Anything)
}

func TestService_Finalize_Twice(t *testing.T) {
	gw := new(mockGateway)
	providerID := uuid.New()
	sess := newTestSession(t, &models.User{ID: providerID, IsProvider: true})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), providerID, valueobject.RequestStatusAccepted)
	finalized := req
	finalized.Status = valueobject.RequestStatusFinalized

	gw.On("ListMyRequests", mock.Anything).Return([]models.ServiceRequest{}, nil)
	gw.On("ListMyRatings", mock.Anything).Return([]models.Rating{}, nil)
	gw.On("ListReceivedRequests", mock.Anything).Return([]models.ServiceRequest{req}, nil).Once()
	gw.On("ListReceivedRequests", mock.Anything).Return([]models.ServiceRequest{finalized}, nil)
	gw.On("FinalizeRequest", mock.Anything, req.ID).Return(&finalized, nil).Once()

	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Finalize(ctx, req.ID)
	assert.NoError(t, err)

	// После авторитетного перечитывания заявка уже finalized.
	_, err = svc.Finalize(ctx, req.ID)
	assert.True(t, apperror.IsInvalidTransition(err))
	gw.AssertExpectations(t)
}

func TestService_Rate_Finalized(t *testing.T) {
	gw := new(mockGateway)
	clientID := uuid.New()
	sess := newTestSession(t, &models.User{ID: clientID})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(clientID, uuid.New(), valueobject.RequestStatusFinalized)
	stubRefresh(gw, []models.ServiceRequest{req}, nil, nil)
	assert.NoError(t, svc.Refresh(ctx))

	comment := "Отличная работа!"
	created := &models.Rating{
		ID:        uuid.New(),
		RequestID: req.ID,
		ClientID:  clientID,
		Score:     5,
		Comment:   &comment,
	}
	gw.On("CreateRating", mock.Anything, req.ID, 5, &comment).Return(created, nil)

	rating, err := svc.Rate(ctx, req.ID, 5, &comment)
	assert.NoError(t, err)
	assert.Equal(t, 5, rating.Score)
	gw.AssertExpectations(t)
}

func TestService_Rate_Duplicate(t *testing.T) {
	gw := new(mockGateway)
	clientID := uuid.New()
	sess := newTestSession(t, &models.User{ID: clientID})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(clientID, uuid.New(), valueobject.RequestStatusFinalized)
	stubRefresh(gw, []models.ServiceRequest{req}, nil, []models.Rating{{RequestID: req.ID, Score: 4}})
	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Rate(ctx, req.ID, 5, nil)
	assert.ErrorIs(t, err, apperror.ErrDuplicateRating)
	gw.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Rate_NotFinalized(t *testing.T) {
	gw := new(mockGateway)
	clientID := uuid.New()
	sess := newTestSession(t, &models.User{ID: clientID})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(clientID, uuid.New(), valueobject.RequestStatusAccepted)
	stubRefresh(gw, []models.ServiceRequest{req}, nil, nil)
	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Rate(ctx, req.ID, 5, nil)
	assert.ErrorIs(t, err, apperror.ErrNotFinalized)
	gw.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Rate_ByProvider(t *testing.T) {
	gw := new(mockGateway)
	providerID := uuid.New()
	sess := newTestSession(t, &models.User{ID: providerID, IsProvider: true})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), providerID, valueobject.RequestStatusFinalized)
	stubRefresh(gw, nil, []models.ServiceRequest{req}, nil)
	assert.NoError(t, svc.Refresh(ctx))

	_, err := svc.Rate(ctx, req.ID, 5, nil)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestService_Rate_InvalidScore(t *testing.T) {
	gw := new(mockGateway)
	sess := newTestSession(t, &models.User{ID: uuid.New()})
	svc := NewService(gw, sess)
	ctx := context.Background()

	_, err := svc.Rate(ctx, uuid.New(), 0, nil)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Rate(ctx, uuid.New(), 6, nil)
	assert.True(t, apperror.IsValidation(err))
	gw.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Delete_Stranger(t *testing.T) {
	gw := new(mockGateway)
	userID := uuid.New()
	sess := newTestSession(t, &models.User{ID: userID})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(uuid.New(), uuid.New(), valueobject.RequestStatusPending)
	stubRefresh(gw, []models.ServiceRequest{req}, nil, nil)
	assert.NoError(t, svc.Refresh(ctx))

	err := svc.Delete(ctx, req.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	gw.AssertNotCalled(t, "DeleteRequest", mock.Anything, mock.Anything)
}

func TestService_Delete_AnyState(t *testing.T) {
	gw := new(mockGateway)
	clientID := uuid.New()
	sess := newTestSession(t, &models.User{ID: clientID})
	svc := NewService(gw, sess)
	ctx := context.Background()

	req := newRequest(clientID, uuid.New(), valueobject.RequestStatusRejected)
	stubRefresh(gw, []models.ServiceRequest{req}, nil, nil)
	assert.NoError(t, svc.Refresh(ctx))

	gw.On("DeleteRequest", mock.Anything, req.ID).Return(nil)
	assert.NoError(t, svc.Delete(ctx, req.ID))
	gw.AssertExpectations(t)
}
