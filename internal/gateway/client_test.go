package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)
	assert.NoError(t, sess.Set("test-token", &models.User{ID: uuid.New()}))

	return NewClient(server.URL, sess, 5*time.Second, 100, time.Minute), server
}

func TestClient_ListMyRequests_BareArray(t *testing.T) {
	id := uuid.New()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/requests/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"` + id.String() + `","status":"pending"}]`))
	}))

	requests, err := client.ListMyRequests(context.Background())
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, id, requests[0].ID)
	assert.Equal(t, valueobject.RequestStatusPending, requests[0].Status)
}

func TestClient_ListMyRequests_ResultsWrapper(t *testing.T) {
	id := uuid.New()
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":"` + id.String() + `","status":"accepted"}]}`))
	}))

	requests, err := client.ListMyRequests(context.Background())
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, valueobject.RequestStatusAccepted, requests[0].Status)
}

func TestClient_BearerTokenForwarded(t *testing.T) {
	var authHeader string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListMyRequests(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", authHeader)
}

func TestClient_RemoteError_DetailShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "сообщение слишком длинное"}`))
	}))

	_, err := client.CreateRequest(context.Background(), &dto.CreateRequestRequest{ServiceID: uuid.New()})
	assert.True(t, apperror.IsValidation(err))

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "сообщение слишком длинное", appErr.Message)
}

func TestClient_RemoteError_FieldMapShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"score": ["оценка должна быть от 1 до 5"]}`))
	}))

	_, err := client.CreateRating(context.Background(), uuid.New(), 9, nil)
	assert.True(t, apperror.IsValidation(err))

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "оценка должна быть от 1 до 5", appErr.Message)
}

func TestClient_RemoteError_ArrayShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`["недопустимая операция"]`))
	}))

	_, err := client.FinalizeRequest(context.Background(), uuid.New())
	assert.True(t, apperror.IsValidation(err))

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "недопустимая операция", appErr.Message)
}

func TestClient_RemoteError_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "token invalid"}`))
	}))

	_, err := client.ListMyRequests(context.Background())
	assert.ErrorIs(t, err, apperror.ErrSessionExpired)
	assert.True(t, apperror.IsUnauthorized(err))
}

func TestClient_RemoteError_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FinalizeRequest(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestClient_RemoteError_Conflict(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "заявка уже рассмотрена"}`))
	}))

	_, err := client.RespondRequest(context.Background(), uuid.New(), valueobject.DecisionAccepted)
	assert.True(t, apperror.IsInvalidTransition(err))
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)
	assert.NoError(t, sess.Set("test-token", &models.User{ID: uuid.New()}))

	client := NewClient(server.URL, sess, 100*time.Millisecond, 100, time.Minute)

	_, err = client.ListMyRequests(context.Background())
	assert.True(t, apperror.IsNetwork(err))
}

func TestClient_UnreachableHost(t *testing.T) {
	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)

	// Порт из зарезервированного диапазона, слушателя нет.
	client := NewClient("http://127.0.0.1:1", sess, time.Second, 100, time.Minute)

	_, err = client.ListMyRequests(context.Background())
	assert.True(t, apperror.IsNetwork(err))
}

func TestClient_MutationLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"` + uuid.New().String() + `"}`))
	}))
	t.Cleanup(server.Close)

	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, err)
	assert.NoError(t, sess.Set("test-token", &models.User{ID: uuid.New()}))

	client := NewClient(server.URL, sess, time.Second, 1, time.Minute)
	ctx := context.Background()

	_, err = client.FinalizeRequest(ctx, uuid.New())
	assert.NoError(t, err)

	_, err = client.FinalizeRequest(ctx, uuid.New())
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.ErrCodeRateLimited, appErr.Code)
}
