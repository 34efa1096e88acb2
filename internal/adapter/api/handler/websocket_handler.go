package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/middleware"
	ws "swapdmarket/internal/infrastructure/websocket"
	"swapdmarket/internal/usecase"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
	"swapdmarket/pkg/response"
)

type WebSocketHandler struct {
	ctx                 context.Context
	wsManager           *ws.Manager
	notificationUseCase *usecase.NotificationUseCase
	upgrader            gorillaws.Upgrader
}

// NewWebSocketHandler ties every connection to ctx, the server lifetime.
func NewWebSocketHandler(ctx context.Context, wsManager *ws.Manager, notificationUseCase *usecase.NotificationUseCase, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		ctx:                 ctx,
		wsManager:           wsManager,
		notificationUseCase: notificationUseCase,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket streams unread-message notifications to the signed-in user.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUID).(string)
	if !ok || userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("websocket upgrade failed for %s: %v", userID, err)
		return nil
	}

	client := ws.NewClient(h.ctx, userID, middleware.ClientID(c), conn)
	h.wsManager.Register <- client

	h.notificationUseCase.Subscribe(client.Context(), userID, client.ClientID, client)

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
