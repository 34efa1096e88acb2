package usecase

import (
	"context"
	"sort"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/pkg/errors"
)

type SellerUseCase struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	catalog     *CatalogUseCase
}

func NewSellerUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	catalog *CatalogUseCase,
) *SellerUseCase {
	return &SellerUseCase{
		userRepo:    userRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		catalog:     catalog,
	}
}

// ListSellers builds the seller directory. Sellers with listings come first, then by rating.
func (uc *SellerUseCase) ListSellers(ctx context.Context, filter entity.SellerFilter) ([]entity.Seller, error) {
	switch filter {
	case "", entity.SellerFilterAll, entity.SellerFilterWithProducts, entity.SellerFilterTopRated:
	default:
		return nil, errors.BadRequest("Unknown seller filter", nil)
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to load sellers", err)
	}
	products, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range products {
		if p.UserID != "" {
			counts[p.UserID]++
		}
	}

	sellers := make([]entity.Seller, 0, len(users))
	for i := range users {
		s := sellerFromUser(&users[i], counts[users[i].ID])
		switch filter {
		case entity.SellerFilterWithProducts:
			if !s.HasProducts {
				continue
			}
		case entity.SellerFilterTopRated:
			if s.Rating < entity.TopRatedThreshold {
				continue
			}
		}
		sellers = append(sellers, s)
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		if sellers[i].HasProducts != sellers[j].HasProducts {
			return sellers[i].HasProducts
		}
		return sellers[i].Rating > sellers[j].Rating
	})
	return sellers, nil
}

func sellerFromUser(u *entity.User, products int) entity.Seller {
	name := u.DisplayName
	if name == "" {
		name = u.Name
	}
	if name == "" {
		name = entity.EmailLocalPart(u.Email)
	}
	if name == "" {
		name = "Anonymous"
	}
	responseTime := u.AverageResponseTime
	if responseTime == "" {
		responseTime = "N/A"
	}
	return entity.Seller{
		ID:           u.ID,
		Name:         name,
		PhotoURL:     u.PhotoURL,
		Rating:       u.ProfileRating,
		TotalSales:   u.TotalSales,
		Verified:     u.Verified,
		JoinedDate:   u.CreatedAt,
		Products:     products,
		Bio:          u.Bio,
		Location:     u.Location,
		ResponseTime: responseTime,
		HasProducts:  products > 0,
	}
}

// GetProfile returns a user with their listings and received reviews.
func (uc *SellerUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load seller products", err)
	}
	reviews, err := uc.reviewRepo.ListBySeller(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load seller reviews", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	return &entity.Profile{User: user, Products: products, Reviews: reviews}, nil
}
