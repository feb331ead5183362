package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/container"
	handlers "github.com/pixelgrove/storefront/internal/interface/http"
	"github.com/pixelgrove/storefront/internal/interface/middleware"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

// NewsModule exposes storefront announcement articles.
// Public: GET /api/news, GET /api/news/:id, GET /api/news/search
// Admin: POST/PUT/DELETE /api/news[/:id]

type NewsModule struct {
	Handler *handlers.NewsHandler
	JWT     *helpers.JWTManager
}

func NewNewsModule(h *handlers.NewsHandler, jwt *helpers.JWTManager) *NewsModule {
	return &NewsModule{Handler: h, JWT: jwt}
}

func (m *NewsModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/news", browseLimiter, m.Handler.List)
	rg.GET("/news/search", searchLimiter, m.Handler.Search)
	rg.GET("/news/:id", browseLimiter, m.Handler.Get)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.POST("/news", m.Handler.Create)
		admin.PUT("/news/:id", m.Handler.Update)
		admin.DELETE("/news/:id", m.Handler.Delete)
	}
}
