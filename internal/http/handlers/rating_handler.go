package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/rating"
)

// RatingGateway — чтение оценок исполнителя из удалённого API.
type RatingGateway interface {
	ListProviderRatings(ctx context.Context, providerID uuid.UUID) ([]models.Rating, error)
}

// RatingHandler отдаёт агрегат оценок для профиля исполнителя.
type RatingHandler struct {
	gw RatingGateway
}

func NewRatingHandler(gw RatingGateway) *RatingHandler {
	return &RatingHandler{gw: gw}
}

// ProviderSummary считает средний балл, количество оценок и раскладку
// звёзд для указанного исполнителя.
func (h *RatingHandler) ProviderSummary(c *gin.Context) {
	providerID, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	ratings, err := h.gw.ListProviderRatings(c.Request.Context(), providerID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	summary := rating.Aggregate(ratings)
	stars := rating.RenderStars(summary.Mean)

	c.JSON(http.StatusOK, dto.RatingSummaryResponse{
		Mean:  summary.Mean,
		Count: summary.Count,
		Full:  stars.Full,
		Half:  stars.Half,
		Empty: stars.Empty,
	})
}

// ProviderRatings отдаёт сырой список оценок исполнителя.
func (h *RatingHandler) ProviderRatings(c *gin.Context) {
	providerID, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	ratings, err := h.gw.ListProviderRatings(c.Request.Context(), providerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}
