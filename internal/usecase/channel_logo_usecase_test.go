package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/testutil"
	"swapdmarket/pkg/errors"
)

func TestExtractChannelID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/channel/UC123abc":       "UC123abc",
		"https://youtube.com/channel/UC123abc?view=home": "UC123abc",
		"https://www.youtube.com/@techguy":               "@techguy",
		"https://www.youtube.com/c/TechGuy/videos":       "TechGuy",
		"https://www.youtube.com/user/oldname":           "oldname",
		"https://www.tiktok.com/@dancer":                 "",
		"":                                               "",
	}
	for url, want := range cases {
		assert.Equal(t, want, ExtractChannelID(url), url)
	}
}

type logoFixture struct {
	uc       *ChannelLogoUseCase
	logos    *testutil.ChannelLogos
	products *testutil.Products
	uploads  *testutil.Uploads
	fetcher  *testutil.LogoFetcher
}

func newLogoFixture() *logoFixture {
	f := &logoFixture{
		logos:    &testutil.ChannelLogos{},
		products: testutil.NewProducts(entity.Product{ID: "p1", UserID: "owner"}),
		uploads:  testutil.NewUploads(),
		fetcher:  &testutil.LogoFetcher{Body: []byte("img"), ContentType: "image/jpeg"},
	}
	f.uc = NewChannelLogoUseCase(f.logos, f.products, f.uploads, f.fetcher, NewCatalogCache())
	f.uc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return f
}

var logoInput = ResolveLogoInput{
	ChannelURL:  "https://www.youtube.com/channel/UC42",
	LogoURL:     "https://yt3.example/photo.jpg",
	ChannelName: "Tech",
	Platform:    "YouTube",
}

func TestResolveLogo_UploadsNewLogo(t *testing.T) {
	f := newLogoFixture()

	logo, err := f.uc.ResolveLogo(context.Background(), &entity.Identity{ID: "owner"}, "p1", logoInput)
	require.NoError(t, err)

	path := "channelLogos/owner/UC42_1700000000000.jpg"
	assert.Equal(t, "https://storage.example.test/"+path, logo.LogoURL)
	assert.Equal(t, []byte("img"), f.uploads.Objects[path])
	require.Len(t, f.logos.Logos, 1)
	assert.Equal(t, "UC42", f.logos.Logos[0].ChannelID)

	product, err := f.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, logo.LogoURL, product.ChannelLogo)
}

func TestResolveLogo_ReusesStoredLogo(t *testing.T) {
	f := newLogoFixture()
	f.logos.Logos = append(f.logos.Logos, entity.ChannelLogo{ChannelID: "UC42", LogoURL: "https://stored.example/logo.png"})

	logo, err := f.uc.ResolveLogo(context.Background(), &entity.Identity{ID: "owner"}, "p1", logoInput)
	require.NoError(t, err)

	assert.Equal(t, "https://stored.example/logo.png", logo.LogoURL)
	assert.Empty(t, f.fetcher.Fetched)
	assert.Len(t, f.logos.Logos, 1)
}

func TestResolveLogo_FallsBackToOriginalURL(t *testing.T) {
	f := newLogoFixture()
	f.fetcher.Err = fmt.Errorf("timeout")

	logo, err := f.uc.ResolveLogo(context.Background(), &entity.Identity{ID: "owner"}, "p1", logoInput)
	require.NoError(t, err)
	assert.Equal(t, logoInput.LogoURL, logo.LogoURL)
	assert.Empty(t, f.uploads.Objects)
}

func TestResolveLogo_OwnerOnly(t *testing.T) {
	f := newLogoFixture()

	_, err := f.uc.ResolveLogo(context.Background(), &entity.Identity{ID: "other"}, "p1", logoInput)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestResolveLogo_FailedUpdateRemovesUpload(t *testing.T) {
	f := newLogoFixture()
	f.products.UpdateErr = fmt.Errorf("deadline exceeded")

	_, err := f.uc.ResolveLogo(context.Background(), &entity.Identity{ID: "owner"}, "p1", logoInput)
	assert.True(t, errors.Is(err, errors.CodeInternal))
	assert.Empty(t, f.uploads.Objects)
	assert.Empty(t, f.logos.Logos)
}
