package usecase

import (
	"context"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/infrastructure/events"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type ProductUseCase struct {
	productRepo  repository.ProductRepository
	favoriteRepo repository.FavoriteRepository
	cache        *CatalogCache
	publisher    events.Publisher
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	favoriteRepo repository.FavoriteRepository,
	cache *CatalogCache,
	publisher events.Publisher,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
		publisher:    publisher,
	}
}

type DeleteResult struct {
	ProductID        string `json:"product_id"`
	FavoritesRemoved int    `json:"favorites_removed"`
}

// DeleteProduct removes a listing. Only its owner or an admin may do so.
// Favorites pointing at the product are cleaned up afterwards on a best-effort basis.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, actor *entity.Identity, productID string) (*DeleteResult, error) {
	if actor == nil || actor.ID == "" {
		return nil, errors.SignInRequired()
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != actor.ID && !actor.IsAdmin {
		return nil, errors.Forbidden("You don't have permission to delete this product", nil)
	}

	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		return nil, errors.Internal("Failed to delete product", err)
	}
	uc.cache.Remove(productID)

	removed, err := uc.favoriteRepo.DeleteByProduct(ctx, productID)
	if err != nil {
		logger.Warn("Favorites of deleted product %s not fully removed: %v", productID, err)
	}

	if err := uc.publisher.PublishProductDeleted(ctx, productID, actor.ID, removed); err != nil {
		logger.Warn("product.deleted event for %s not published: %v", productID, err)
	}

	logger.Info("Product %s deleted by %s (%d favorites removed)", productID, actor.ID, removed)
	return &DeleteResult{ProductID: productID, FavoritesRemoved: removed}, nil
}
