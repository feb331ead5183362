package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/container"
	handlers "github.com/pixelgrove/storefront/internal/interface/http"
	"github.com/pixelgrove/storefront/internal/interface/middleware"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

// CommentModule registers the per-product comment forest under
// /api/products/:id/comments. Reading the thread is public; every
// mutation requires a session, and the author is always the session user.

type CommentModule struct {
	Handler *handlers.CommentHandler
	JWT     *helpers.JWTManager
}

func NewCommentModule(h *handlers.CommentHandler, jwt *helpers.JWTManager) *CommentModule {
	return &CommentModule{Handler: h, JWT: jwt}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/products/:id/comments", browseLimiter, m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products/:id/comments", m.Handler.Create)
		auth.PUT("/products/:id/comments/:commentId", m.Handler.Edit)
		auth.DELETE("/products/:id/comments/:commentId", m.Handler.Delete)
		auth.POST("/products/:id/comments/:commentId/like", m.Handler.Like)
		auth.POST("/products/:id/comments/:commentId/reply", m.Handler.Reply)
	}
}
