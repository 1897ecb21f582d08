package router

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"userdeck/internal/adapter/gin/handler"
	"userdeck/internal/adapter/gin/middleware"
)

// Options groups what SetupRouter needs besides the handler.
type Options struct {
	Templates   *template.Template
	Static      fs.FS
	Session     middleware.SessionConfig
	RateLimit   middleware.RateLimiterConfig
	RedisClient *redis.Client // nil disables rate limiting
	ServiceName string
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(uiHandler *handler.UIHandler, opts Options, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(opts.Templates)

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	router.StaticFS("/static", http.FS(opts.Static))

	pages := router.Group("/", middleware.Session(opts.Session))
	{
		pages.GET("", uiHandler.Page)

		forms := pages.Group("", middleware.RateLimiter(opts.RedisClient, opts.RateLimit, log))
		{
			forms.POST("refresh", uiHandler.Refresh)
			forms.POST("users", uiHandler.CreateUser)
			forms.POST("users/update", uiHandler.UpdateUser)
			forms.POST("users/:id/delete", uiHandler.DeleteUser)
		}
	}

	return router
}
