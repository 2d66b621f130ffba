package dto

import (
	"github.com/ignatzorin/marketplace-client/internal/models"
)

// AuthResponse — ответ удалённого API на вход/регистрацию.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// IsProviderResponse — ответ эндпоинта проверки роли исполнителя.
type IsProviderResponse struct {
	IsProvider bool `json:"is_provider"`
}

// MarkReadResponse — сколько чужих сообщений отмечено прочитанными.
type MarkReadResponse struct {
	MessagesRead int `json:"messages_read"`
}

// RatingSummaryResponse — агрегат оценок исполнителя для профиля.
type RatingSummaryResponse struct {
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
	Full  int     `json:"full_stars"`
	Half  bool    `json:"half_star"`
	Empty int     `json:"empty_stars"`
}

// ErrorResponse — единый формат ошибки локального API.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
