package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/testutil"
	"swapdmarket/pkg/errors"
)

func TestDeleteProduct_OwnerCascadesFavorites(t *testing.T) {
	ctx := context.Background()
	products := testutil.NewProducts(
		entity.Product{ID: "p1", UserID: "owner"},
		entity.Product{ID: "p2", UserID: "owner"},
	)
	favorites := testutil.NewFavorites()
	for _, uid := range []string{"a", "b"} {
		_, err := favorites.Toggle(ctx, &entity.Favorite{UserID: uid, ProductID: "p1"})
		require.NoError(t, err)
	}
	cache := NewCatalogCache()
	catalog := NewCatalogUseCase(products, cache, testutil.NewClientState(), metrics.Noop(), CatalogOptions{})
	_, err := catalog.Load(ctx)
	require.NoError(t, err)
	publisher := &testutil.Publisher{}
	uc := NewProductUseCase(products, favorites, cache, publisher)

	result, err := uc.DeleteProduct(ctx, &entity.Identity{ID: "owner"}, "p1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.FavoritesRemoved)
	assert.Equal(t, []string{"p1"}, products.Deleted)
	assert.Equal(t, []string{"p1"}, publisher.ProductsDeleted)

	cached, ok := cache.Get()
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "p2", cached[0].ID)
}

func TestDeleteProduct_Permissions(t *testing.T) {
	ctx := context.Background()
	products := testutil.NewProducts(entity.Product{ID: "p1", UserID: "owner"})
	uc := NewProductUseCase(products, testutil.NewFavorites(), NewCatalogCache(), &testutil.Publisher{})

	_, err := uc.DeleteProduct(ctx, &entity.Identity{ID: "stranger"}, "p1")
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	assert.Empty(t, products.Deleted)

	_, err = uc.DeleteProduct(ctx, nil, "p1")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	_, err = uc.DeleteProduct(ctx, &entity.Identity{ID: "admin", IsAdmin: true}, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, products.Deleted)
}
