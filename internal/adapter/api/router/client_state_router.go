package router

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/handler"
	"swapdmarket/internal/adapter/api/middleware"
)

func SetupClientStateRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	stateHandler := handler.GetClientStateHandler()

	state := e.Group("/v1/client-state")
	state.Use(authMiddleware.OptionalAuth)
	state.GET("", stateHandler.GetState)
	state.PUT("/scroll", stateHandler.SaveScroll)
	state.PUT("/notification-sound", stateHandler.SetNotificationSound)
}
