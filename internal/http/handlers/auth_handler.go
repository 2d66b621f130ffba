package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/session"
	"github.com/ignatzorin/marketplace-client/internal/validation"
)

// AuthGateway — операции аутентификации удалённого API.
type AuthGateway interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
	IsProvider(ctx context.Context) (bool, error)
}

// AuthHandler обслуживает вход, регистрацию и выход локальной сессии.
type AuthHandler struct {
	gw      AuthGateway
	session *session.Store
}

func NewAuthHandler(gw AuthGateway, sess *session.Store) *AuthHandler {
	return &AuthHandler{gw: gw, session: sess}
}

// Register регистрирует пользователя и сразу открывает сессию.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validation.ValidateLength("имя", req.Name, 2, validation.MaxDisplayNameLength); err != nil {
		_ = c.Error(err)
		return
	}

	auth, err := h.gw.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.openSession(c, auth); err != nil {
		_ = c.Error(err)
		return
	}

	user, _ := h.session.Current()
	c.JSON(http.StatusCreated, user)
}

// Login обменивает учётные данные на сессию.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		_ = c.Error(err)
		return
	}

	auth, err := h.gw.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.openSession(c, auth); err != nil {
		_ = c.Error(err)
		return
	}

	user, _ := h.session.Current()
	c.JSON(http.StatusOK, user)
}

// openSession сохраняет выданный токен и дополняет личность флагом
// исполнителя. Недоступность проверки роли не валит вход: флаг
// обновится при следующем обращении.
func (h *AuthHandler) openSession(c *gin.Context, auth *dto.AuthResponse) error {
	if auth.Token == "" || auth.User == nil {
		return apperror.New(apperror.ErrCodeNetwork, "удалённый API вернул неполный ответ входа")
	}

	if err := h.session.Set(auth.Token, auth.User); err != nil {
		return err
	}

	isProvider, err := h.gw.IsProvider(c.Request.Context())
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warnf("auth: не удалось определить роль исполнителя: %v", err)
		}
		return nil
	}

	user := *auth.User
	user.IsProvider = isProvider
	return h.session.UpdateUser(&user)
}

// Logout атомарно сбрасывает сессию; после возврата ни один запрос
// не уйдёт со старым токеном.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Clear(); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Me возвращает личность текущей сессии, сверяясь с удалённым API.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	remote, err := h.gw.Me(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	remote.IsProvider = user.IsProvider
	if isProvider, provErr := h.gw.IsProvider(c.Request.Context()); provErr == nil {
		remote.IsProvider = isProvider
	}

	if err := h.session.UpdateUser(remote); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, remote)
}
