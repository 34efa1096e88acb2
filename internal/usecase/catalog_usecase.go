package usecase

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"swapdmarket/internal/domain/entity"
	"swapdmarket/internal/domain/repository"
	"swapdmarket/internal/domain/service"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
	"swapdmarket/pkg/utils"
)

const (
	DefaultCatalogLimit = 1000
	DefaultPageSize     = 48
)

type CatalogOptions struct {
	Limit    int
	PageSize int
}

type CatalogUseCase struct {
	productRepo repository.ProductRepository
	cache       *CatalogCache
	state       repository.ClientStateStore
	metrics     metrics.Recorder
	opts        CatalogOptions
	now         Clock
	loads       singleflight.Group
}

func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	cache *CatalogCache,
	state repository.ClientStateStore,
	recorder metrics.Recorder,
	opts CatalogOptions,
) *CatalogUseCase {
	if opts.Limit <= 0 {
		opts.Limit = DefaultCatalogLimit
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &CatalogUseCase{
		productRepo: productRepo,
		cache:       cache,
		state:       state,
		metrics:     recorder,
		opts:        opts,
		now:         time.Now,
	}
}

// Load returns the catalog, reading the document store only on the first call
// after start or invalidation. Failures are not cached. The shared read outlives
// the request that started it, and its result is not cached when an invalidation
// lands while it runs.
func (uc *CatalogUseCase) Load(ctx context.Context) ([]entity.Product, error) {
	if products, ok := uc.cache.Get(); ok {
		uc.metrics.IncCatalogCacheHit()
		return products, nil
	}

	v, err, _ := uc.loads.Do("catalog", func() (interface{}, error) {
		if products, ok := uc.cache.Get(); ok {
			return products, nil
		}
		uc.metrics.IncCatalogCacheMiss()

		gen := uc.cache.Generation()
		raw, err := uc.productRepo.ListRecent(context.WithoutCancel(ctx), uc.opts.Limit)
		if err != nil {
			logger.Error("Catalog load failed: %v", err)
			return nil, errors.New(errors.CodeCatalogUnavailable, "Failed to load products. Please try again later.", http.StatusServiceUnavailable, err)
		}

		now := uc.now()
		products := make([]entity.Product, 0, len(raw))
		for _, doc := range raw {
			products = append(products, service.NormalizeProduct(doc, now))
		}
		if !uc.cache.SetAt(gen, products) {
			logger.Info("Catalog invalidated during load, %d products served uncached", len(products))
			return products, nil
		}
		logger.Info("Catalog loaded with %d products", len(products))
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]entity.Product), nil
}

func (uc *CatalogUseCase) Invalidate() {
	uc.cache.Invalidate()
}

type BrowseInput struct {
	ClientID string
	// Filters replaces the persisted filters when set.
	Filters *entity.FilterOptions
	// Page is the requested 1-indexed page; 0 restores the persisted page.
	Page int
}

type BrowseResult struct {
	Items          []entity.Product     `json:"items"`
	Total          int                  `json:"total"`
	Page           int                  `json:"page"`
	PageSize       int                  `json:"page_size"`
	TotalPages     int                  `json:"total_pages"`
	Filters        entity.FilterOptions `json:"filters"`
	ScrollPosition int                  `json:"scroll_position"`
}

// Browse filters, sorts and pages the catalog, remembering filters and page per client.
func (uc *CatalogUseCase) Browse(ctx context.Context, input BrowseInput) (*BrowseResult, error) {
	products, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Without a client id nothing is read or persisted.
	persist := input.ClientID != ""
	var saved entity.ClientState
	if persist {
		saved = uc.state.Load(input.ClientID)
	}
	filters := saved.Filters
	page := input.Page
	if page <= 0 {
		page = saved.CurrentPage
	}

	if input.Filters != nil && *input.Filters != saved.Filters {
		filters = *input.Filters
		page = 1
		if persist {
			if err := uc.state.Put(input.ClientID, entity.StateKeyFilters, filters); err != nil {
				logger.Warn("Failed to persist filters for %s: %v", input.ClientID, err)
			}
		}
	}
	if page <= 0 {
		page = 1
	}
	if persist && page != saved.CurrentPage {
		if err := uc.state.Put(input.ClientID, entity.StateKeyCurrentPage, page); err != nil {
			logger.Warn("Failed to persist page for %s: %v", input.ClientID, err)
		}
	}

	filtered := service.ApplyFilters(products, filters)
	return &BrowseResult{
		Items:          utils.Paginate(filtered, page, uc.opts.PageSize),
		Total:          len(filtered),
		Page:           page,
		PageSize:       uc.opts.PageSize,
		TotalPages:     utils.TotalPages(len(filtered), uc.opts.PageSize),
		Filters:        filters,
		ScrollPosition: saved.ScrollPosition,
	}, nil
}

// GetProduct serves the product from the catalog when loaded, otherwise from the store.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if products, ok := uc.cache.Get(); ok {
		for i := range products {
			if products[i].ID == productID {
				p := products[i]
				return &p, nil
			}
		}
	}
	return uc.productRepo.GetByID(ctx, productID)
}

func (uc *CatalogUseCase) SaveScrollPosition(clientID string, position int) error {
	if clientID == "" {
		return errClientIDRequired()
	}
	if position < 0 {
		position = 0
	}
	return uc.state.Put(clientID, entity.StateKeyScrollPosition, position)
}

func (uc *CatalogUseCase) SetNotificationSound(clientID string, enabled bool) error {
	if clientID == "" {
		return errClientIDRequired()
	}
	return uc.state.Put(clientID, entity.StateKeyNotificationSound, enabled)
}

// ClientState returns the persisted state, or the zero state for an unidentified client.
func (uc *CatalogUseCase) ClientState(clientID string) entity.ClientState {
	if clientID == "" {
		return entity.ClientState{}
	}
	return uc.state.Load(clientID)
}

func errClientIDRequired() *errors.AppError {
	return errors.BadRequest("Client state needs an X-Client-ID header or a signed-in user", nil)
}
