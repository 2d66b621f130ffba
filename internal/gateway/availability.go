package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/models"
)

// ListMySlots возвращает окна доступности текущего исполнителя.
func (c *Client) ListMySlots(ctx context.Context) ([]models.AvailabilitySlot, error) {
	var out listResponse[models.AvailabilitySlot]
	if err := c.do(ctx, http.MethodGet, "/availability/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ListProviderSlots возвращает публичные окна доступности исполнителя.
func (c *Client) ListProviderSlots(ctx context.Context, providerID uuid.UUID) ([]models.AvailabilitySlot, error) {
	var out listResponse[models.AvailabilitySlot]
	path := fmt.Sprintf("/availability/public/?provider=%s", providerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// CreateSlot создаёт окно доступности.
func (c *Client) CreateSlot(ctx context.Context, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	payload := map[string]any{
		"day":        slot.Day,
		"start_time": slot.StartTime,
		"end_time":   slot.EndTime,
	}
	var out models.AvailabilitySlot
	if err := c.mutate(ctx, http.MethodPost, "/availability/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSlot удаляет окно доступности.
func (c *Client) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/availability/%s/", id), nil, nil)
}
