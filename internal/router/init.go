package router

import (
	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/internal/container"
	pginfra "github.com/pixelgrove/storefront/internal/infrastructure/postgres"
	handlers "github.com/pixelgrove/storefront/internal/interface/http"
	"github.com/pixelgrove/storefront/internal/router/modules"
)

// InitModules builds the repository/service/handler graph from the container
// singletons and registers every feature module with the registry. Call once
// during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	carts := pginfra.NewCartRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	libraries := pginfra.NewLibraryRepository(pool)
	comments := pginfra.NewCommentRepository(pool)
	news := pginfra.NewNewsRepository(pool)

	authSvc := application.NewAuthService(users, carts, container.GetJWT(), container.GetRedis(), logger)
	catalogSvc := application.NewCatalogService(products, container.GetRedis(), logger,
		container.GetES(), cfg.ESProductsIndex, container.GetGCS(), cfg.GCSBucket)
	cartSvc := application.NewCartService(carts, products, logger)
	orderSvc := application.NewOrderService(orders, products, users, container.GetRabbitPub(), logger)
	librarySvc := application.NewLibraryService(libraries, products, logger)
	commentSvc := application.NewCommentService(comments, products, logger)
	newsSvc := application.NewNewsService(news, logger, container.GetES(), cfg.ESNewsIndex)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetCookies())
	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	cartHandler := handlers.NewCartHandler(cartSvc)
	orderHandler := handlers.NewOrderHandler(orderSvc)
	libraryHandler := handlers.NewLibraryHandler(librarySvc)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	newsHandler := handlers.NewNewsHandler(newsSvc)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewCatalogModule(catalogHandler, jwt))
	r.Add(modules.NewCommerceModule(cartHandler, orderHandler, libraryHandler, jwt))
	r.Add(modules.NewCommentModule(commentHandler, jwt))
	r.Add(modules.NewNewsModule(newsHandler, jwt))
}
