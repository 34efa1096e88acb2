package handler

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/usecase"
	"swapdmarket/pkg/response"
)

type SellerHandler struct {
	sellerUseCase *usecase.SellerUseCase
}

func NewSellerHandler(sellerUseCase *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{
		sellerUseCase: sellerUseCase,
	}
}

func (h *SellerHandler) ListSellers(c echo.Context) error {
	filter := entity.SellerFilter(c.QueryParam("filter"))

	sellers, err := h.sellerUseCase.ListSellers(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sellers)
}

func (h *SellerHandler) GetProfile(c echo.Context) error {
	profile, err := h.sellerUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}
