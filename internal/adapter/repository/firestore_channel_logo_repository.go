package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
)

type firestoreChannelLogoRepository struct {
	client *firestore.Client
}

func NewFirestoreChannelLogoRepository(client *firestore.Client) repository.ChannelLogoRepository {
	return &firestoreChannelLogoRepository{client: client}
}

func (r *firestoreChannelLogoRepository) FindByChannelID(ctx context.Context, channelID string) (*entity.ChannelLogo, error) {
	docs, err := r.client.Collection(collectionChannelLogos).
		Where("channelId", "==", channelID).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to look up channel logo", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("Channel logo", nil)
	}

	var logo entity.ChannelLogo
	if err := docs[0].DataTo(&logo); err != nil {
		return nil, errors.Internal("Failed to parse channel logo", err)
	}
	logo.ID = docs[0].Ref.ID
	return &logo, nil
}

func (r *firestoreChannelLogoRepository) Save(ctx context.Context, logo *entity.ChannelLogo) error {
	ref := r.client.Collection(collectionChannelLogos).NewDoc()
	if _, err := ref.Create(ctx, logo); err != nil {
		return errors.Internal("Failed to save channel logo", err)
	}
	logo.ID = ref.ID
	return nil
}
