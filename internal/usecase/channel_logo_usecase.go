package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/domain/service"
	"swapdmarket/internal/infrastructure/storage"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

var channelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/channel/([^/?#]+)`),
	regexp.MustCompile(`youtube\.com/(@[^/?#]+)`),
	regexp.MustCompile(`youtube\.com/c/([^/?#]+)`),
	regexp.MustCompile(`youtube\.com/user/([^/?#]+)`),
}

// ExtractChannelID pulls the channel id out of a YouTube channel URL.
// Handles keep their leading "@". Unknown URLs yield "".
func ExtractChannelID(channelURL string) string {
	for _, re := range channelPatterns {
		if m := re.FindStringSubmatch(channelURL); m != nil {
			return m[1]
		}
	}
	return ""
}

type ChannelLogoUseCase struct {
	logoRepo    repository.ChannelLogoRepository
	productRepo repository.ProductRepository
	uploads     service.FileUploadService
	fetcher     LogoFetcher
	cache       *CatalogCache
	now         Clock
}

func NewChannelLogoUseCase(
	logoRepo repository.ChannelLogoRepository,
	productRepo repository.ProductRepository,
	uploads service.FileUploadService,
	fetcher LogoFetcher,
	cache *CatalogCache,
) *ChannelLogoUseCase {
	return &ChannelLogoUseCase{
		logoRepo:    logoRepo,
		productRepo: productRepo,
		uploads:     uploads,
		fetcher:     fetcher,
		cache:       cache,
		now:         time.Now,
	}
}

type ResolveLogoInput struct {
	ChannelURL  string `json:"channel_url" validate:"required,url"`
	LogoURL     string `json:"logo_url" validate:"required,url"`
	ChannelName string `json:"channel_name"`
	Platform    string `json:"platform"`
}

// ResolveLogo gives the product a durable channel logo: the one already stored for the
// channel, or a copy of LogoURL uploaded to object storage. When the copy fails the
// original URL is used.
func (uc *ChannelLogoUseCase) ResolveLogo(ctx context.Context, owner *entity.Identity, productID string, input ResolveLogoInput) (*entity.ChannelLogo, error) {
	if owner == nil || owner.ID == "" {
		return nil, errors.SignInRequired()
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != owner.ID {
		return nil, errors.Forbidden("You can only change the logo of your own listings", nil)
	}

	channelID := ExtractChannelID(input.ChannelURL)
	logo, err := uc.lookup(ctx, channelID)
	if err != nil {
		return nil, err
	}
	stored := false
	if logo == nil {
		logo = &entity.ChannelLogo{
			ChannelID:   channelID,
			ChannelName: input.ChannelName,
			LogoURL:     uc.store(ctx, owner.ID, channelID, input.LogoURL),
			Platform:    input.Platform,
			CreatedAt:   uc.now().UnixMilli(),
		}
		stored = true
	}

	if err := uc.productRepo.UpdateChannelLogo(ctx, productID, logo.LogoURL); err != nil {
		if stored && logo.LogoURL != input.LogoURL {
			if derr := uc.uploads.DeleteFile(ctx, logo.LogoURL); derr != nil {
				logger.Warn("Orphaned logo %s not removed: %v", logo.LogoURL, derr)
			}
		}
		return nil, errors.Internal("Failed to update channel logo", err)
	}
	if stored && channelID != "" {
		if err := uc.logoRepo.Save(ctx, logo); err != nil {
			logger.Warn("Channel logo record for %s not saved: %v", channelID, err)
		}
	}
	uc.cache.Update(productID, func(p *entity.Product) {
		p.ChannelLogo = logo.LogoURL
		if channelID != "" {
			p.ChannelID = channelID
		}
	})
	return logo, nil
}

func (uc *ChannelLogoUseCase) lookup(ctx context.Context, channelID string) (*entity.ChannelLogo, error) {
	if channelID == "" {
		return nil, nil
	}
	logo, err := uc.logoRepo.FindByChannelID(ctx, channelID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, nil
		}
		return nil, errors.Internal("Failed to look up channel logo", err)
	}
	return logo, nil
}

// store copies the remote logo into object storage and returns its public URL.
func (uc *ChannelLogoUseCase) store(ctx context.Context, userID, channelID, logoURL string) string {
	body, contentType, err := uc.fetcher.Fetch(ctx, logoURL)
	if err != nil {
		logger.Warn("Logo download from %s failed, keeping original URL: %v", logoURL, err)
		return logoURL
	}
	defer body.Close()

	name := channelID
	if name == "" {
		name = "logo"
	}
	objectPath := fmt.Sprintf("channelLogos/%s/%s_%d.%s", userID, name, uc.now().UnixMilli(), storage.ExtensionFor(contentType))
	url, err := uc.uploads.UploadFile(ctx, body, contentType, objectPath)
	if err != nil {
		logger.Warn("Logo upload to %s failed, keeping original URL: %v", objectPath, err)
		return logoURL
	}
	return url
}
