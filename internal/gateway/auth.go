package gateway

import (
	"context"
	"net/http"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
)

// Register регистрирует пользователя и возвращает выданные учётные данные.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.mutate(ctx, http.MethodPost, "/auth/register/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login обменивает email и пароль на bearer-токен.
func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.mutate(ctx, http.MethodPost, "/auth/login/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me возвращает личность владельца токена.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IsProvider сообщает, владеет ли текущий пользователь хотя бы одной
// опубликованной услугой.
func (c *Client) IsProvider(ctx context.Context) (bool, error) {
	var out dto.IsProviderResponse
	if err := c.do(ctx, http.MethodGet, "/auth/is-provider/", nil, &out); err != nil {
		return false, err
	}
	return out.IsProvider, nil
}
