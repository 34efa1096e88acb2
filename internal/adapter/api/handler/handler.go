package handler

import (
	"swapdmarket/internal/usecase"
)

var (
	productHandler     *ProductHandler
	favoriteHandler    *FavoriteHandler
	chatHandler        *ChatHandler
	sellerHandler      *SellerHandler
	clientStateHandler *ClientStateHandler
)

func Setup(
	catalogUseCase *usecase.CatalogUseCase,
	productUseCase *usecase.ProductUseCase,
	contactUseCase *usecase.ContactUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	channelLogoUseCase *usecase.ChannelLogoUseCase,
	chatUseCase *usecase.ChatUseCase,
	sellerUseCase *usecase.SellerUseCase,
) {
	productHandler = NewProductHandler(catalogUseCase, productUseCase, contactUseCase, favoriteUseCase, channelLogoUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	sellerHandler = NewSellerHandler(sellerUseCase)
	clientStateHandler = NewClientStateHandler(catalogUseCase)
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetSellerHandler() *SellerHandler {
	return sellerHandler
}

func GetClientStateHandler() *ClientStateHandler {
	return clientStateHandler
}
