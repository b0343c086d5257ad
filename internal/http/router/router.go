package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cityvoice/cityvoice-backend/internal/config"
	"github.com/cityvoice/cityvoice-backend/internal/http/handlers"
	"github.com/cityvoice/cityvoice-backend/internal/http/middleware"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

// SetupRouter собирает маршруты сервиса.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	reportHandler *handlers.ReportHandler,
	commentHandler *handlers.CommentHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.POST("/logout", authHandler.Logout)
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", authHandler.DeleteSession)
	}

	// Публичные маршруты: список обращений открыт для анонимного
	// просмотра, всё остальное чтение требует авторизации.
	api.GET("/reports", reportHandler.List)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/reports/:id", middleware.IDValidator("id"), reportHandler.Get)
		protected.GET("/reports/:id/comments", middleware.IDValidator("id"), commentHandler.List)

		protected.POST("/reports", reportHandler.Create)
		protected.PUT("/reports/:id", middleware.IDValidator("id"), reportHandler.Update)
		protected.DELETE("/reports/:id", middleware.IDValidator("id"), reportHandler.Delete)
		protected.POST("/reports/:id/upvote", middleware.IDValidator("id"), reportHandler.ToggleUpvote)

		protected.POST("/reports/:id/comments", middleware.IDValidator("id"), commentHandler.Create)
		protected.DELETE("/comments/:id", middleware.IDValidator("id"), commentHandler.Delete)
		protected.POST("/comments/:id/like", middleware.IDValidator("id"), commentHandler.ToggleLike)

		protected.POST("/media/photos", mediaHandler.UploadPhoto)
		protected.DELETE("/media/:id", mediaHandler.DeleteMedia)
	}

	// Модерация: смена статуса доступна только администраторам.
	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminMiddleware())
	{
		admin.PUT("/reports/:id/status", middleware.IDValidator("id"), reportHandler.UpdateStatus)
	}

	return r
}
