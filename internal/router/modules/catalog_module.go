package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/container"
	handlers "github.com/pixelgrove/storefront/internal/interface/http"
	"github.com/pixelgrove/storefront/internal/interface/middleware"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

// CatalogModule exposes the product catalog.
// Public: GET /api/products, GET /api/products/:id, GET /api/products/search
// Admin: POST/PUT/DELETE /api/products[/:id], POST /api/products/:id/cover

type CatalogModule struct {
	Handler *handlers.CatalogHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/search", searchLimiter, m.Handler.Search)
	rg.GET("/products/:id", browseLimiter, m.Handler.Get)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.POST("/products", m.Handler.Create)
		admin.PUT("/products/:id", m.Handler.Update)
		admin.DELETE("/products/:id", m.Handler.Delete)
		admin.POST("/products/:id/cover", m.Handler.UploadCover)
	}
}
