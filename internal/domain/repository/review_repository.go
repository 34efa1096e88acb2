package repository

import (
	"context"

	"swapdmarket/internal/domain/entity"
)

type ReviewRepository interface {
	ListBySeller(ctx context.Context, sellerID string) ([]entity.Review, error)
}
