package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{client: client}
}

func (r *firestoreFavoriteRepository) favoriteRef(userID, productID string) *firestore.DocumentRef {
	return userSubcollection(r.client, userID, collectionFavorites).Doc(productID)
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	_, err := r.favoriteRef(userID, productID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}
	return true, nil
}

func (r *firestoreFavoriteRepository) Toggle(ctx context.Context, fav *entity.Favorite) (bool, error) {
	ref := r.favoriteRef(fav.UserID, fav.ProductID)
	var isFavorite bool

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		switch {
		case err == nil:
			isFavorite = false
			return tx.Delete(ref)
		case isNotFound(err):
			isFavorite = true
			return tx.Create(ref, fav)
		default:
			return err
		}
	})
	if err != nil {
		logger.Error("Toggle Error: user=%s product=%s: %v", fav.UserID, fav.ProductID, err)
		return false, errors.Internal("Failed to update favorites", err)
	}
	return isFavorite, nil
}

func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	docs, err := userSubcollection(r.client, userID, collectionFavorites).
		OrderBy("addedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list favorites", err)
	}

	favorites := make([]entity.Favorite, 0, len(docs))
	for _, doc := range docs {
		var fav entity.Favorite
		if err := doc.DataTo(&fav); err != nil {
			logger.Warn("Skipping unreadable favorite %s for %s: %v", doc.Ref.ID, userID, err)
			continue
		}
		fav.UserID = userID
		if fav.ProductID == "" {
			fav.ProductID = doc.Ref.ID
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

// DeleteByProduct removes the product from every favorites collection, the per-user ones
// and the legacy top-level one. Failures on single documents do not stop the sweep.
func (r *firestoreFavoriteRepository) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	docs, err := r.client.CollectionGroup(collectionFavorites).
		Where("productId", "==", productID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to find favorites for product", err)
	}

	deleted := 0
	var firstErr error
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			logger.Warn("Failed to delete favorite %s: %v", doc.Ref.Path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}
	if firstErr != nil {
		return deleted, errors.Internal("Failed to remove some favorites", firstErr)
	}
	return deleted, nil
}
