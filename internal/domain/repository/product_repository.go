package repository

import (
	"context"

	"swapdmarket/internal/domain/entity"
)

type ProductRepository interface {
	// ListRecent returns up to limit raw product documents, newest first.
	ListRecent(ctx context.Context, limit int) ([]entity.RawProduct, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByOwner(ctx context.Context, userID string) ([]entity.Product, error)
	UpdateChannelLogo(ctx context.Context, id, logoURL string) error
	Delete(ctx context.Context, id string) error
}

type ChannelLogoRepository interface {
	FindByChannelID(ctx context.Context, channelID string) (*entity.ChannelLogo, error)
	Save(ctx context.Context, logo *entity.ChannelLogo) error
}
