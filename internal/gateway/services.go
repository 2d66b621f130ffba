package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
)

// ListPublicServices возвращает публичный каталог услуг с фильтрами.
func (c *Client) ListPublicServices(ctx context.Context, filters map[string]string) ([]models.Service, error) {
	path := "/services/public/"
	if len(filters) > 0 {
		params := url.Values{}
		for key, value := range filters {
			if value != "" {
				params.Set(key, value)
			}
		}
		if encoded := params.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	var out listResponse[models.Service]
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListMyServices возвращает услуги текущего исполнителя.
func (c *Client) ListMyServices(ctx context.Context) ([]models.Service, error) {
	var out listResponse[models.Service]
	if err := c.do(ctx, http.MethodGet, "/services/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// GetService возвращает услугу по идентификатору.
func (c *Client) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var out models.Service
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/services/%s/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateService публикует новую услугу.
func (c *Client) CreateService(ctx context.Context, req *dto.UpsertServiceRequest) (*models.Service, error) {
	var out models.Service
	if err := c.mutate(ctx, http.MethodPost, "/services/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateService правит существующую услугу.
func (c *Client) UpdateService(ctx context.Context, id uuid.UUID, req *dto.UpsertServiceRequest) (*models.Service, error) {
	var out models.Service
	if err := c.mutate(ctx, http.MethodPut, fmt.Sprintf("/services/%s/", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteService снимает услугу с публикации.
func (c *Client) DeleteService(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/services/%s/", id), nil, nil)
}
