package handler

import (
	"github.com/labstack/echo/v4"

	"swapdmarket/internal/adapter/api/middleware"
	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/service"
	"swapdmarket/internal/usecase"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/response"
	"swapdmarket/pkg/utils"
)

type ProductHandler struct {
	catalogUseCase     *usecase.CatalogUseCase
	productUseCase     *usecase.ProductUseCase
	contactUseCase     *usecase.ContactUseCase
	favoriteUseCase    *usecase.FavoriteUseCase
	channelLogoUseCase *usecase.ChannelLogoUseCase
}

func NewProductHandler(
	catalogUseCase *usecase.CatalogUseCase,
	productUseCase *usecase.ProductUseCase,
	contactUseCase *usecase.ContactUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	channelLogoUseCase *usecase.ChannelLogoUseCase,
) *ProductHandler {
	return &ProductHandler{
		catalogUseCase:     catalogUseCase,
		productUseCase:     productUseCase,
		contactUseCase:     contactUseCase,
		favoriteUseCase:    favoriteUseCase,
		channelLogoUseCase: channelLogoUseCase,
	}
}

// browseQuery carries the filter query parameters plus reset, which clears saved filters.
type browseQuery struct {
	entity.FilterOptions
	Reset bool `query:"reset"`
}

// ListProducts browses the catalog. Without filter parameters the client's saved filters apply.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var q browseQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return response.Error(c, errors.BadRequest("Invalid filter parameters", err))
	}
	if err := c.Validate(&q.FilterOptions); err != nil {
		return response.Error(c, err)
	}

	input := usecase.BrowseInput{
		ClientID: middleware.ClientID(c),
		Page:     utils.GetPageParam(c),
	}
	if q.Reset || !q.FilterOptions.IsZero() {
		filters := q.FilterOptions
		input.Filters = &filters
	}

	result, err := h.catalogUseCase.Browse(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) ReloadCatalog(c echo.Context) error {
	h.catalogUseCase.Invalidate()
	products, err := h.catalogUseCase.Load(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{"products": len(products)})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	result, err := h.productUseCase.DeleteProduct(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

type contactSellerRequest struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=stripe bitcoin"`
	UseEscrow     *bool  `json:"use_escrow"`
}

func (h *ProductHandler) ContactSeller(c echo.Context) error {
	var req contactSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = service.PaymentMethodBitcoin
	}
	useEscrow := true
	if req.UseEscrow != nil {
		useEscrow = *req.UseEscrow
	}

	result, err := h.contactUseCase.ContactSeller(c.Request().Context(), middleware.IdentityFrom(c), usecase.ContactInput{
		ClientID:      middleware.ClientID(c),
		ProductID:     c.Param("id"),
		PaymentMethod: req.PaymentMethod,
		UseEscrow:     useEscrow,
	})
	if err != nil {
		return response.Error(c, err)
	}
	if result.Created {
		return response.Created(c, result)
	}
	return response.Success(c, result)
}

func (h *ProductHandler) ToggleFavorite(c echo.Context) error {
	state, err := h.favoriteUseCase.Toggle(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, state)
}

func (h *ProductHandler) FavoriteStatus(c echo.Context) error {
	productID := c.Param("id")
	isFavorite, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), middleware.IdentityFrom(c), productID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, usecase.FavoriteState{ProductID: productID, IsFavorite: isFavorite})
}

func (h *ProductHandler) ResolveChannelLogo(c echo.Context) error {
	var req usecase.ResolveLogoInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	logo, err := h.channelLogoUseCase.ResolveLogo(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, logo)
}
