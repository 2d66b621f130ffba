package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/validation"
)

// ProfileGateway — операции профиля удалённого API.
type ProfileGateway interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*models.Profile, error)
	UploadProfilePhoto(ctx context.Context, filename string, content []byte, maxSizeMB int64) (*models.Profile, error)
}

// ProfileHandler обслуживает собственный профиль пользователя.
type ProfileHandler struct {
	gw          ProfileGateway
	maxUploadMB int64
}

func NewProfileHandler(gw ProfileGateway, maxUploadMB int64) *ProfileHandler {
	return &ProfileHandler{gw: gw, maxUploadMB: maxUploadMB}
}

// Get возвращает собственный профиль.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.gw.GetProfile(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update правит собственный профиль.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validation.ValidateLength("имя", req.Name, 2, validation.MaxDisplayNameLength); err != nil {
		_ = c.Error(err)
		return
	}
	if req.Bio != nil {
		if err := validation.ValidateLength("о себе", *req.Bio, 0, validation.MaxBioLength); err != nil {
			_ = c.Error(err)
			return
		}
	}

	profile, err := h.gw.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadPhoto принимает multipart-файл и пересылает его удалённому API.
// Тип файла проверяется по содержимому до отправки.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		_ = c.Error(apperror.New(apperror.ErrCodeValidation, "файл photo обязателен"))
		return
	}
	defer file.Close()

	limit := h.maxUploadMB * 1024 * 1024
	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		_ = c.Error(apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось прочитать файл"))
		return
	}
	if int64(len(content)) > limit {
		_ = c.Error(apperror.New(apperror.ErrCodeValidation, "файл слишком большой"))
		return
	}

	profile, err := h.gw.UploadProfilePhoto(c.Request.Context(), header.Filename, content, h.maxUploadMB)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
