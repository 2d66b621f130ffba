package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/validation"
)

// ServiceGateway — операции каталога услуг удалённого API.
type ServiceGateway interface {
	ListPublicServices(ctx context.Context, filters map[string]string) ([]models.Service, error)
	ListMyServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, req *dto.UpsertServiceRequest) (*models.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, req *dto.UpsertServiceRequest) (*models.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

// ServiceHandler обслуживает каталог услуг.
type ServiceHandler struct {
	gw ServiceGateway
}

func NewServiceHandler(gw ServiceGateway) *ServiceHandler {
	return &ServiceHandler{gw: gw}
}

// Catalog отдаёт публичный каталог. Поддерживаются фильтры запроса
// category и search, остальные параметры игнорируются.
func (h *ServiceHandler) Catalog(c *gin.Context) {
	filters := map[string]string{
		"category": c.Query("category"),
		"search":   c.Query("search"),
	}

	services, err := h.gw.ListPublicServices(c.Request.Context(), filters)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Mine отдаёт услуги текущего исполнителя.
func (h *ServiceHandler) Mine(c *gin.Context) {
	services, err := h.gw.ListMyServices(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Get отдаёт услугу по идентификатору.
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	service, err := h.gw.GetService(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// Create публикует новую услугу.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req dto.UpsertServiceRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validateServicePayload(&req); err != nil {
		_ = c.Error(err)
		return
	}

	service, err := h.gw.CreateService(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// Update правит существующую услугу.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req dto.UpsertServiceRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if err := validateServicePayload(&req); err != nil {
		_ = c.Error(err)
		return
	}

	service, err := h.gw.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// Delete снимает услугу с публикации.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := pathUUID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.gw.DeleteService(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateServicePayload(req *dto.UpsertServiceRequest) error {
	if err := validation.ValidateLength("название", req.Title, validation.MinServiceTitleLen, validation.MaxServiceTitleLen); err != nil {
		return err
	}
	return validation.ValidateLength("описание", req.Description, 0, validation.MaxServiceDescrLen)
}
