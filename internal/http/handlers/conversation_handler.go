package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/lifecycle"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/projection"
	"github.com/ignatzorin/marketplace-client/internal/validation"
)

// ChatSender — отправка сообщения через удалённый API.
type ChatSender interface {
	SendMessage(ctx context.Context, requestID uuid.UUID, text string) (*models.Message, error)
}

// ConversationHandler обслуживает страницу сообщений: проекцию
// заявки/чаты, операции жизненного цикла и тред выбранного элемента.
type ConversationHandler struct {
	lifecycle *lifecycle.Service
	projector *projection.Projector
	chat      ChatSender
}

func NewConversationHandler(lc *lifecycle.Service, projector *projection.Projector, chat ChatSender) *ConversationHandler {
	return &ConversationHandler{lifecycle: lc, projector: projector, chat: chat}
}

// View отдаёт свежую проекцию: перечитывает авторитетный список и
// раскладывает его по вкладкам с допустимыми действиями.
func (h *ConversationHandler) View(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.lifecycle.Refresh(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}

	view := projection.Build(h.lifecycle.Snapshot(), projection.Viewer{
		UserID:     user.ID,
		IsProvider: user.IsProvider,
	}, h.lifecycle.Rated())

	c.JSON(http.StatusOK, view)
}

// Create создаёт заявку на услугу.
func (h *ConversationHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.lifecycle.Create(c.Request.Context(), req.ServiceID, req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Respond принимает или отклоняет pending-заявку.
func (h *ConversationHandler) Respond(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.RespondRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	decision, err := valueobject.NewDecision(req.Decision)
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.lifecycle.Respond(c.Request.Context(), id, decision)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Finalize помечает принятую заявку завершённой.
func (h *ConversationHandler) Finalize(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.lifecycle.Finalize(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete убирает заявку из видимости обеих сторон. Необратимо:
// подтверждение обязано быть на стороне UI.
func (h *ConversationHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.lifecycle.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Rate оставляет оценку по завершённой заявке.
func (h *ConversationHandler) Rate(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.RateRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	rating, err := h.lifecycle.Rate(c.Request.Context(), id, req.Score, req.Comment)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// Messages отдаёт тред выбранного элемента. Отметка прочитанного
// уходит в фон и не влияет на ответ.
func (h *ConversationHandler) Messages(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Тред доступен только по заявке из загруженного набора.
	if _, err := h.lifecycle.Get(id); err != nil {
		_ = c.Error(err)
		return
	}

	messages, err := h.projector.Select(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Send отправляет сообщение в чат заявки.
func (h *ConversationHandler) Send(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.SendMessageRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validation.ValidateChatMessage(req.Text); err != nil {
		_ = c.Error(err)
		return
	}

	request, err := h.lifecycle.Get(id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !request.IsClient(user.ID) && !request.IsProvider(user.ID) {
		_ = c.Error(apperror.ErrForbidden)
		return
	}
	if request.Status != valueobject.RequestStatusAccepted && request.Status != valueobject.RequestStatusFinalized {
		_ = c.Error(apperror.New(apperror.ErrCodeInvalidTransition, "чат доступен только по принятой заявке"))
		return
	}

	message, err := h.chat.SendMessage(c.Request.Context(), id, req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
