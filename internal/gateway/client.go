package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

// Client — исходящий клиент удалённого API маркетплейса.
// Подставляет bearer-токен из сессии, сериализует JSON и приводит
// разнородные форматы ошибок удалённого API к apperror.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	mutations  *limiter.Limiter
	timeout    time.Duration
}

// NewClient создаёт экземпляр клиента. mutationLimit ограничивает
// частоту мутирующих вызовов, чтобы зациклившийся UI не заваливал API.
func NewClient(baseURL string, sess *session.Store, timeout time.Duration, mutationLimit int64, mutationPeriod time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if mutationLimit <= 0 {
		mutationLimit = 30
	}
	if mutationPeriod <= 0 {
		mutationPeriod = time.Minute
	}

	rate := limiter.Rate{
		Period: mutationPeriod,
		Limit:  mutationLimit,
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		session:    sess,
		timeout:    timeout,
		mutations:  limiter.New(memory.NewStore(), rate),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do выполняет один вызов удалённого API. Каждый вызов получает
// ограниченный таймаут; отмена контекста вызывающей стороной просто
// бросает результат (контракт cancellation-on-unmount).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать запрос")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось собрать запрос")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.remoteError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeNetwork, "некорректный ответ удалённого API")
	}
	return nil
}

// mutate — как do, но с учётом лимита исходящих мутаций.
func (c *Client) mutate(ctx context.Context, method, path string, body any, out any) error {
	lctx, err := c.mutations.Get(ctx, "outbound")
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить лимит запросов")
	}
	if lctx.Reached {
		return apperror.New(apperror.ErrCodeRateLimited, "слишком много операций, попробуйте позже")
	}
	return c.do(ctx, method, path, body, out)
}

// transportError классифицирует ошибку транспорта: таймаут и обрыв — это
// NetworkError, отличимый от ошибок валидации и переходов.
func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.Wrap(err, apperror.ErrCodeNetwork, "удалённый API не ответил вовремя")
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return apperror.Wrap(err, apperror.ErrCodeNetwork, "запрос отменён")
	}
	return apperror.Wrap(err, apperror.ErrCodeNetwork, "удалённый API недоступен")
}

// remoteError превращает ответ с кодом >= 400 в apperror.
func (c *Client) remoteError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	message := normalizeRemoteMessage(raw)

	if logger.Log != nil {
		logger.Log.WithField("status", resp.StatusCode).Debugf("gateway: ошибка удалённого API: %s", message)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperror.ErrSessionExpired
	case http.StatusForbidden:
		if message == "" {
			return apperror.ErrForbidden
		}
		return apperror.New(apperror.ErrCodeForbidden, message)
	case http.StatusNotFound:
		if message == "" {
			return apperror.ErrRequestNotFound
		}
		return apperror.New(apperror.ErrCodeNotFound, message)
	case http.StatusConflict:
		if message == "" {
			message = "операция конфликтует с текущим состоянием"
		}
		return apperror.New(apperror.ErrCodeInvalidTransition, message)
	case http.StatusBadRequest:
		if message == "" {
			message = "удалённый API отклонил запрос"
		}
		return apperror.New(apperror.ErrCodeValidation, message)
	case http.StatusTooManyRequests:
		return apperror.New(apperror.ErrCodeRateLimited, "удалённый API ограничил частоту запросов")
	default:
		if message == "" {
			message = fmt.Sprintf("не удалось выполнить запрос (код %d)", resp.StatusCode)
		}
		return apperror.New(apperror.ErrCodeNetwork, message)
	}
}
