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

func newFavoriteUseCase() (*FavoriteUseCase, *testutil.Favorites) {
	products := testutil.NewProducts(entity.Product{
		ID:          "p1",
		UserID:      "seller",
		DisplayName: "Tech Channel",
		Price:       75,
		ChannelLogo: "https://logo.example/tc.png",
		ImageURLs:   []string{"https://img.example/a.png", "https://img.example/b.png"},
	})
	favorites := testutil.NewFavorites()
	return NewFavoriteUseCase(favorites, products, &testutil.Limiter{}, metrics.Noop()), favorites
}

func TestFavoriteToggle_Alternates(t *testing.T) {
	uc, favorites := newFavoriteUseCase()
	ctx := context.Background()
	user := &entity.Identity{ID: "u1"}

	for i, want := range []bool{true, false, true, false} {
		state, err := uc.Toggle(ctx, user, "p1")
		require.NoError(t, err)
		assert.Equal(t, want, state.IsFavorite, "toggle %d", i+1)

		exists, err := uc.IsFavorite(ctx, user, "p1")
		require.NoError(t, err)
		assert.Equal(t, want, exists)
	}
	assert.Empty(t, favorites.Data["u1"])
}

func TestFavoriteToggle_StoresDenormalizedProduct(t *testing.T) {
	uc, _ := newFavoriteUseCase()
	ctx := context.Background()

	_, err := uc.Toggle(ctx, &entity.Identity{ID: "u1"}, "p1")
	require.NoError(t, err)

	list, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tech Channel", list[0].ProductName)
	assert.Equal(t, 75.0, list[0].ProductPrice)
	assert.Equal(t, "https://img.example/a.png", list[0].ProductImage)
}

func TestFavoriteToggle_RequiresSignIn(t *testing.T) {
	uc, favorites := newFavoriteUseCase()

	_, err := uc.Toggle(context.Background(), nil, "p1")

	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	assert.Empty(t, favorites.Data)

	exists, err := uc.IsFavorite(context.Background(), nil, "p1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFavoriteToggle_UnknownProduct(t *testing.T) {
	uc, _ := newFavoriteUseCase()

	_, err := uc.Toggle(context.Background(), &entity.Identity{ID: "u1"}, "missing")

	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
