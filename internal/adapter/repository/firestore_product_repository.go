package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/domain/service"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) ListRecent(ctx context.Context, limit int) ([]entity.RawProduct, error) {
	iter := r.client.Collection(collectionProducts).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var products []entity.RawProduct
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("ListRecent Error: %v", err)
			return nil, errors.Internal("Failed to load products", err)
		}
		products = append(products, entity.RawProduct{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return products, nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(collectionProducts).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Product", err)
		}
		return nil, errors.Internal("Failed to get product", err)
	}

	product := service.NormalizeProduct(entity.RawProduct{ID: doc.Ref.ID, Data: doc.Data()}, time.Now())
	return &product, nil
}

func (r *firestoreProductRepository) ListByOwner(ctx context.Context, userID string) ([]entity.Product, error) {
	docs, err := r.client.Collection(collectionProducts).
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list seller products", err)
	}

	now := time.Now()
	products := make([]entity.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, service.NormalizeProduct(entity.RawProduct{ID: doc.Ref.ID, Data: doc.Data()}, now))
	}
	return products, nil
}

func (r *firestoreProductRepository) UpdateChannelLogo(ctx context.Context, id, logoURL string) error {
	_, err := r.client.Collection(collectionProducts).Doc(id).Update(ctx, []firestore.Update{
		{Path: "channelLogo", Value: logoURL},
		{Path: "lastUpdated", Value: time.Now().UnixMilli()},
	})
	if err != nil {
		if isNotFound(err) {
			return errors.NotFound("Product", err)
		}
		return errors.Internal("Failed to update channel logo", err)
	}
	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(collectionProducts).Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete product", err)
	}
	return nil
}
