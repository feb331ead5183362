package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/container"
	handlers "github.com/pixelgrove/storefront/internal/interface/http"
	"github.com/pixelgrove/storefront/internal/interface/middleware"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

// CommerceModule covers the purchase flow: cart and wishlist ledgers, order
// placement, the checkout saga, and the owned-games library. Everything here
// requires an authenticated session.

type CommerceModule struct {
	Cart    *handlers.CartHandler
	Orders  *handlers.OrderHandler
	Library *handlers.LibraryHandler
	JWT     *helpers.JWTManager
}

func NewCommerceModule(cart *handlers.CartHandler, orders *handlers.OrderHandler, library *handlers.LibraryHandler, jwt *helpers.JWTManager) *CommerceModule {
	return &CommerceModule{Cart: cart, Orders: orders, Library: library, JWT: jwt}
}

func (m *CommerceModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/cart", m.Cart.GetCart)
		auth.POST("/cart", m.Cart.AddToCart)
		auth.DELETE("/cart/:productId", m.Cart.RemoveFromCart)

		auth.GET("/wishlist", m.Cart.GetWishlist)
		auth.POST("/wishlist", m.Cart.AddToWishlist)
		auth.DELETE("/wishlist/:productId", m.Cart.RemoveFromWishlist)

		auth.POST("/orders", m.Orders.Place)
		auth.GET("/orders/:id", m.Orders.Get)

		auth.GET("/library", m.Library.Get)
		auth.POST("/library", m.Library.Grant)
	}

	// Checkout gets its own tighter limit: it is the only money-moving route.
	checkout := rg.Group("/")
	checkout.Use(middleware.Auth(container.GetRedis(), m.JWT))
	checkout.Use(middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), nil))
	{
		checkout.POST("/checkout", m.Orders.Checkout)
	}
}
