package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-client/internal/config"
	"github.com/ignatzorin/marketplace-client/internal/http/handlers"
	"github.com/ignatzorin/marketplace-client/internal/http/middleware"
	"github.com/ignatzorin/marketplace-client/internal/session"
)

func SetupRouter(
	cfg *config.Config,
	sess *session.Store,
	authHandler *handlers.AuthHandler,
	conversationHandler *handlers.ConversationHandler,
	ratingHandler *handlers.RatingHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	serviceHandler *handlers.ServiceHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
	wsHandler *handlers.WSHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler(sess))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.SessionRequired(sess), authHandler.Logout)
			auth.GET("/me", middleware.SessionRequired(sess), authHandler.Me)
		}

		// Публичный каталог и рейтинг исполнителя доступны без сессии.
		api.GET("/services", serviceHandler.Catalog)
		api.GET("/services/:id", middleware.UUIDValidator("id"), serviceHandler.Get)
		api.GET("/providers/:id/rating", middleware.UUIDValidator("id"), ratingHandler.ProviderSummary)
		api.GET("/providers/:id/ratings", middleware.UUIDValidator("id"), ratingHandler.ProviderRatings)

		private := api.Group("")
		private.Use(middleware.SessionRequired(sess))
		{
			private.GET("/conversations", conversationHandler.View)
			private.GET("/conversations/:id/messages", middleware.UUIDValidator("id"), conversationHandler.Messages)
			private.POST("/conversations/:id/messages", middleware.UUIDValidator("id"), conversationHandler.Send)

			private.POST("/requests", conversationHandler.Create)
			private.POST("/requests/:id/respond", middleware.UUIDValidator("id"), conversationHandler.Respond)
			private.POST("/requests/:id/finalize", middleware.UUIDValidator("id"), conversationHandler.Finalize)
			private.POST("/requests/:id/rating", middleware.UUIDValidator("id"), conversationHandler.Rate)
			private.DELETE("/requests/:id", middleware.UUIDValidator("id"), conversationHandler.Delete)

			private.GET("/availability", availabilityHandler.List)
			private.POST("/availability", availabilityHandler.Create)
			private.DELETE("/availability/:id", middleware.UUIDValidator("id"), availabilityHandler.Delete)

			private.GET("/my-services", serviceHandler.Mine)
			private.POST("/services", serviceHandler.Create)
			private.PUT("/services/:id", middleware.UUIDValidator("id"), serviceHandler.Update)
			private.DELETE("/services/:id", middleware.UUIDValidator("id"), serviceHandler.Delete)

			private.GET("/profile", profileHandler.Get)
			private.PUT("/profile", profileHandler.Update)
			private.POST("/profile/photo", profileHandler.UploadPhoto)

			private.GET("/ws", wsHandler.Connect)
		}
	}

	return r
}
