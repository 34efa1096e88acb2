package usecase

import (
	"context"
	"time"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/infrastructure/ratelimit"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
	limiter      RateLimiter
	metrics      metrics.Recorder
	now          Clock
}

func NewFavoriteUseCase(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
	limiter RateLimiter,
	recorder metrics.Recorder,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		limiter:      limiter,
		metrics:      recorder,
		now:          time.Now,
	}
}

type FavoriteState struct {
	ProductID  string `json:"product_id"`
	IsFavorite bool   `json:"is_favorite"`
}

// Toggle adds the product to the user's favorites, or removes it when already there.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, user *entity.Identity, productID string) (*FavoriteState, error) {
	if user == nil || user.ID == "" {
		return nil, errors.SignInRequired()
	}
	if ok, wait := uc.limiter.Allow(user.ID, ratelimit.ActionToggleFavorite); !ok {
		return nil, errors.TooManyRequests("Too many favorite changes. Please slow down.", int(wait.Seconds())+1)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	added, err := uc.favoriteRepo.Toggle(ctx, &entity.Favorite{
		UserID:       user.ID,
		ProductID:    product.ID,
		AddedAt:      uc.now().UnixMilli(),
		ProductName:  product.DisplayName,
		ProductPrice: product.Price,
		ProductImage: product.FirstImage(),
	})
	if err != nil {
		logger.Error("Favorite toggle failed for %s/%s: %v", user.ID, productID, err)
		return nil, errors.Internal("Failed to update favorites", err)
	}

	uc.metrics.IncFavoriteToggle(added)
	return &FavoriteState{ProductID: product.ID, IsFavorite: added}, nil
}

// IsFavorite reports false for anonymous callers.
func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, user *entity.Identity, productID string) (bool, error) {
	if user == nil || user.ID == "" {
		return false, nil
	}
	return uc.favoriteRepo.Exists(ctx, user.ID, productID)
}

func (uc *FavoriteUseCase) List(ctx context.Context, userID string) ([]entity.Favorite, error) {
	return uc.favoriteRepo.ListByUser(ctx, userID)
}
