package router

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/handler"
	"swapdmarket/internal/adapter/api/middleware"
)

// SetupChatRouter sets up the chat read routes. Chats are created by the contact flow.
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.GET("", chatHandler.ListChats)                // GET /v1/chats - caller's chat list
	chatGroup.GET("/unread", chatHandler.UnreadCount)       // GET /v1/chats/unread - unread badge
	chatGroup.GET("/:id/messages", chatHandler.GetMessages) // GET /v1/chats/:id/messages - message log
}
