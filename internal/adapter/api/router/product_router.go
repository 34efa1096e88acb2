package router

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/handler"
	"swapdmarket/internal/adapter/api/middleware"
	"swapdmarket/internal/infrastructure/ratelimit"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	productHandler := handler.GetProductHandler()

	// Contact and favorite identify the caller themselves so anonymous users get the sign-in redirect.
	products := e.Group("/v1/products")
	products.Use(authMiddleware.OptionalAuth)
	products.GET("", productHandler.ListProducts, middleware.RateLimit(limiter, ratelimit.ActionPublicAPI))
	products.GET("/:id", productHandler.GetProduct)
	products.POST("/:id/contact", productHandler.ContactSeller)
	products.POST("/:id/favorite", productHandler.ToggleFavorite)

	products.DELETE("/:id", productHandler.DeleteProduct, authMiddleware.Authenticate)
	products.GET("/:id/favorite", productHandler.FavoriteStatus, authMiddleware.Authenticate)
	products.PUT("/:id/channel-logo", productHandler.ResolveChannelLogo, authMiddleware.Authenticate)

	products.POST("/reload", productHandler.ReloadCatalog, authMiddleware.Authenticate, middleware.AdminOnly)
}
