package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/h2non/filetype"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
)

// GetProfile возвращает собственный профиль.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/me/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile правит собственный профиль.
func (c *Client) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	var out models.Profile
	if err := c.mutate(ctx, http.MethodPut, "/profile/me/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadProfilePhoto загружает фото профиля. Тип определяется по
// содержимому, а не по расширению: принимаются только изображения.
func (c *Client) UploadProfilePhoto(ctx context.Context, filename string, content []byte, maxSizeMB int64) (*models.Profile, error) {
	if maxSizeMB > 0 && int64(len(content)) > maxSizeMB*1024*1024 {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл слишком большой")
	}

	kind, err := filetype.Match(content)
	if err != nil || !filetype.IsImage(content) {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл должен быть изображением")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось подготовить файл")
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось подготовить файл")
	}
	if err := writer.Close(); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось подготовить файл")
	}

	lctx, err := c.mutations.Get(ctx, "outbound")
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить лимит запросов")
	}
	if lctx.Reached {
		return nil, apperror.New(apperror.ErrCodeRateLimited, "слишком много операций, попробуйте позже")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/profile/me/photo/", &body)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось собрать запрос")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Photo-Kind", kind.MIME.Value)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.remoteError(resp)
	}

	var out models.Profile
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeNetwork, "некорректный ответ удалённого API")
	}
	return &out, nil
}
