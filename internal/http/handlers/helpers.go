package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/http/middleware"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
)

// currentUser извлекает личность сессии из контекста запроса.
func currentUser(c *gin.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	return user, nil
}

// pathUUID парсит UUID-параметр пути. Параметры закрыты UUIDValidator,
// так что ошибка здесь означает неправильно собранный маршрут.
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.New(apperror.ErrCodeBadRequest, "параметр "+name+" должен быть валидным UUID")
	}
	return id, nil
}

// bindJSON декодирует тело запроса в dst с единым сообщением об ошибке.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, "некорректное тело запроса")
	}
	return nil
}
