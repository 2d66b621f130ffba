package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/models"
)

// CreateRating оставляет оценку по завершённой заявке.
func (c *Client) CreateRating(ctx context.Context, requestID uuid.UUID, score int, comment *string) (*models.Rating, error) {
	payload := map[string]any{
		"request": requestID,
		"score":   score,
	}
	if comment != nil {
		payload["comment"] = *comment
	}

	var out models.Rating
	if err := c.mutate(ctx, http.MethodPost, "/ratings/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMyRatings возвращает оценки, оставленные текущим пользователем.
func (c *Client) ListMyRatings(ctx context.Context) ([]models.Rating, error) {
	var out listResponse[models.Rating]
	if err := c.do(ctx, http.MethodGet, "/ratings/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListProviderRatings возвращает оценки, полученные исполнителем.
func (c *Client) ListProviderRatings(ctx context.Context, providerID uuid.UUID) ([]models.Rating, error) {
	var out listResponse[models.Rating]
	path := fmt.Sprintf("/ratings/?provider=%s", providerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
