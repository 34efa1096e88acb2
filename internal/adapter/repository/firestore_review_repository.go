package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{client: client}
}

// ListBySeller returns the seller's reviews, newest first.
func (r *firestoreReviewRepository) ListBySeller(ctx context.Context, sellerID string) ([]entity.Review, error) {
	docs, err := r.client.Collection(collectionReviews).
		Where("sellerId", "==", sellerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list reviews", err)
	}

	reviews := make([]entity.Review, 0, len(docs))
	for _, doc := range docs {
		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			logger.Warn("Skipping unreadable review %s: %v", doc.Ref.ID, err)
			continue
		}
		review.ID = doc.Ref.ID
		reviews = append(reviews, review)
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Timestamp.After(reviews[j].Timestamp)
	})
	return reviews, nil
}
