package handler

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/middleware"
	"swapdmarket/internal/usecase"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/response"
)

type ClientStateHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewClientStateHandler(catalogUseCase *usecase.CatalogUseCase) *ClientStateHandler {
	return &ClientStateHandler{
		catalogUseCase: catalogUseCase,
	}
}

type scrollRequest struct {
	Position int `json:"position" validate:"min=0"`
}

type soundRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func (h *ClientStateHandler) GetState(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.ClientState(middleware.ClientID(c)))
}

func (h *ClientStateHandler) SaveScroll(c echo.Context) error {
	var req scrollRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	clientID := middleware.ClientID(c)
	if clientID == "" {
		return response.Error(c, errors.BadRequest("Client state needs an X-Client-ID header or a signed-in user", nil))
	}
	if err := h.catalogUseCase.SaveScrollPosition(clientID, req.Position); err != nil {
		return response.Error(c, errors.Internal("Failed to save scroll position", err))
	}
	return response.Success(c, h.catalogUseCase.ClientState(clientID))
}

func (h *ClientStateHandler) SetNotificationSound(c echo.Context) error {
	var req soundRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	clientID := middleware.ClientID(c)
	if clientID == "" {
		return response.Error(c, errors.BadRequest("Client state needs an X-Client-ID header or a signed-in user", nil))
	}
	if err := h.catalogUseCase.SetNotificationSound(clientID, *req.Enabled); err != nil {
		return response.Error(c, errors.Internal("Failed to save notification preference", err))
	}
	return response.Success(c, h.catalogUseCase.ClientState(clientID))
}
