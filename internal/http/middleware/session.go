package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

// Context ключи для gin.Context.
const (
	ContextUserKey = "sessionUser"
)

// SessionRequired пропускает запрос только при живой локальной сессии.
// Личность кладётся в контекст; подпись токена проверяет удалённый API.
func SessionRequired(sess *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		user, ok := sess.Current()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser извлекает личность текущей сессии из контекста.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := raw.(*models.User)
	return user, ok
}
