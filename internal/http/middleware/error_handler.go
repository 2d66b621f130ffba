package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-client/internal/logger"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

// ErrorHandler обрабатывает ошибки централизованно: apperror получает
// свой статус и сообщение, всё остальное маскируется. Ошибка
// авторизации удалённого API принудительно сбрасывает сессию —
// UI перенаправит на вход.
func ErrorHandler(sess *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		statusCode := http.StatusInternalServerError
		message := "внутренняя ошибка приложения"
		code := apperror.ErrCodeInternal

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			statusCode = appErr.HTTPStatus
			message = appErr.Message
			code = appErr.Code
		}

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"code":   code,
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Warn("ошибка запроса")
		}

		if code == apperror.ErrCodeUnauthorized {
			// Просроченный credential не переживает ни одного запроса.
			if clearErr := sess.Clear(); clearErr != nil && logger.Log != nil {
				logger.Log.Errorf("не удалось сбросить сессию: %v", clearErr)
			}
		}

		c.JSON(statusCode, gin.H{"error": message, "code": string(code)})
	}
}
