package router

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/handler"
	"swapdmarket/internal/adapter/api/middleware"
	"swapdmarket/internal/infrastructure/ratelimit"
)

func SetupSellerRouter(e *echo.Echo, limiter middleware.Limiter) {
	sellerHandler := handler.GetSellerHandler()
	throttle := middleware.RateLimit(limiter, ratelimit.ActionPublicAPI)

	e.GET("/v1/sellers", sellerHandler.ListSellers, throttle)
	e.GET("/v1/users/:id/profile", sellerHandler.GetProfile, throttle)
}
