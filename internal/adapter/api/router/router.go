package router

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/middleware"
)

// Setup registers every REST route. handler.Setup must run first.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	SetupHealthRouter(e)
	SetupProductRouter(e, authMiddleware, limiter)
	SetupFavoriteRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupSellerRouter(e, limiter)
	SetupClientStateRouter(e, authMiddleware)
}
