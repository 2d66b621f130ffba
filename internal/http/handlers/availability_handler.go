package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-client/internal/availability"
	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
)

// AvailabilityHandler обслуживает окна доступности исполнителя.
type AvailabilityHandler struct {
	planner *availability.Planner
}

func NewAvailabilityHandler(planner *availability.Planner) *AvailabilityHandler {
	return &AvailabilityHandler{planner: planner}
}

// List возвращает окна текущего исполнителя по дням недели.
func (h *AvailabilityHandler) List(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !user.IsProvider {
		_ = c.Error(apperror.ErrForbidden)
		return
	}

	slots, err := h.planner.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// Create добавляет окно доступности.
func (h *AvailabilityHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !user.IsProvider {
		_ = c.Error(apperror.ErrForbidden)
		return
	}

	var req dto.CreateSlotRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	slot, err := h.planner.Add(c.Request.Context(), req.Day, req.StartTime, req.EndTime)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// Delete удаляет окно доступности.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.planner.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
