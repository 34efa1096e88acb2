package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/testutil"
	"swapdmarket/pkg/errors"
)

func newSellerUseCase() *SellerUseCase {
	products := testutil.NewProducts(
		entity.Product{ID: "p1", UserID: "low"},
		entity.Product{ID: "p2", UserID: "low"},
		entity.Product{ID: "p3", UserID: "high"},
	)
	users := &testutil.Users{Users: []entity.User{
		{ID: "none", Email: "idle@example.com", ProfileRating: 5},
		{ID: "low", DisplayName: "Low Seller", ProfileRating: 3.9},
		{ID: "high", Name: "High Seller", ProfileRating: 4.8, AverageResponseTime: "1h"},
	}}
	reviews := &testutil.Reviews{Reviews: []entity.Review{
		{ID: "r1", SellerID: "high", Rating: 5, Timestamp: time.Unix(100, 0)},
		{ID: "r2", SellerID: "high", Rating: 4, Timestamp: time.Unix(200, 0)},
		{ID: "r3", SellerID: "low", Rating: 2, Timestamp: time.Unix(300, 0)},
	}}
	catalog := NewCatalogUseCase(products, NewCatalogCache(), testutil.NewClientState(), metrics.Noop(), CatalogOptions{})
	return NewSellerUseCase(users, products, reviews, catalog)
}

func sellerIDs(sellers []entity.Seller) []string {
	out := make([]string, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, s.ID)
	}
	return out
}

func TestListSellers_OrderAndFilters(t *testing.T) {
	uc := newSellerUseCase()
	ctx := context.Background()

	all, err := uc.ListSellers(ctx, entity.SellerFilterAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low", "none"}, sellerIDs(all))
	assert.Equal(t, "idle", all[2].Name)
	assert.Equal(t, "N/A", all[1].ResponseTime)
	assert.Equal(t, 2, all[1].Products)

	withProducts, err := uc.ListSellers(ctx, entity.SellerFilterWithProducts)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low"}, sellerIDs(withProducts))

	topRated, err := uc.ListSellers(ctx, entity.SellerFilterTopRated)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "none"}, sellerIDs(topRated))

	_, err = uc.ListSellers(ctx, "bogus")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestGetProfile(t *testing.T) {
	uc := newSellerUseCase()

	profile, err := uc.GetProfile(context.Background(), "high")
	require.NoError(t, err)
	assert.Equal(t, "High Seller", profile.User.Name)
	require.Len(t, profile.Products, 1)
	assert.Equal(t, "p3", profile.Products[0].ID)
	require.Len(t, profile.Reviews, 2)
	assert.Equal(t, "r2", profile.Reviews[0].ID)

	_, err = uc.GetProfile(context.Background(), "ghost")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
