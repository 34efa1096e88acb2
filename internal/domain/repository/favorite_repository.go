package repository

import (
	"context"

	"swapdmarket/internal/domain/entity"
)

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, productID string) (bool, error)

	// Toggle removes the favorite when present, otherwise stores fav. It reports whether
	// the product is a favorite afterwards.
	Toggle(ctx context.Context, fav *entity.Favorite) (bool, error)

	ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error)

	// DeleteByProduct removes every favorite that references the product.
	DeleteByProduct(ctx context.Context, productID string) (int, error)
}
