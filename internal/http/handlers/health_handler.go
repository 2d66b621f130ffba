package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler отвечает на проверку живости приложения.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
