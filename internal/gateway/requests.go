package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
)

// listResponse поддерживает оба формата списков удалённого API:
// голый массив и постраничную обёртку {"results": [...]}.
type listResponse[T any] struct {
	Results []T
}

func (l *listResponse[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &l.Results)
	}

	var wrapped struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	l.Results = wrapped.Results
	return nil
}

// CreateRequest создаёт заявку на услугу в состоянии pending.
func (c *Client) CreateRequest(ctx context.Context, req *dto.CreateRequestRequest) (*models.ServiceRequest, error) {
	var out models.ServiceRequest
	if err := c.mutate(ctx, http.MethodPost, "/requests/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyRequests возвращает заявки, созданные текущим пользователем,
// в порядке выдачи удалённого API.
func (c *Client) ListMyRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	var out listResponse[models.ServiceRequest]
	if err := c.do(ctx, http.MethodGet, "/requests/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListReceivedRequests возвращает заявки, где текущий пользователь — исполнитель.
func (c *Client) ListReceivedRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	var out listResponse[models.ServiceRequest]
	if err := c.do(ctx, http.MethodGet, "/requests/received/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// RespondRequest передаёт решение исполнителя по pending-заявке.
func (c *Client) RespondRequest(ctx context.Context, id uuid.UUID, decision valueobject.Decision) (*models.ServiceRequest, error) {
	payload := map[string]string{"decision": string(decision)}
	var out models.ServiceRequest
	if err := c.mutate(ctx, http.MethodPost, fmt.Sprintf("/requests/%s/respond/", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinalizeRequest помечает принятую заявку завершённой.
func (c *Client) FinalizeRequest(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	var out models.ServiceRequest
	if err := c.mutate(ctx, http.MethodPost, fmt.Sprintf("/requests/%s/finalize/", id), struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRequest убирает заявку из видимости обеих сторон. Необратимо.
func (c *Client) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/requests/%s/", id), nil, nil)
}
