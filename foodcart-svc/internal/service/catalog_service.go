package service

import (
	"context"
	"strings"

	"foodcart/foodcart-svc/internal/domain"

	"go.uber.org/zap"
)

var banners = []struct {
	title, file, text string
}{
	{"Burger", "burger.jpg", "Tasty Burger at your door step"},
	{"Spices", "food.jpg", "All Cuisines"},
	{"New York", "tasty.jpg", "Food is incomplete without a tasty dessert"},
}

type CatalogService struct {
	repo      ProductRepository
	cache     CatalogCache
	staticURL string
	mediaURL  string
	logger    *zap.SugaredLogger
}

func NewCatalogService(repo ProductRepository, cache CatalogCache, staticURL, mediaURL string, logger *zap.SugaredLogger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CatalogService{
		repo:      repo,
		cache:     cache,
		staticURL: staticURL,
		mediaURL:  mediaURL,
		logger:    logger,
	}
}

func (s *CatalogService) Banners() []domain.Banner {
	result := make([]domain.Banner, 0, len(banners))
	for _, b := range banners {
		result = append(result, domain.Banner{
			Title: b.title,
			Src:   joinURL(s.staticURL, b.file),
			Text:  b.text,
		})
	}
	return result
}

// AvailableProducts lists products that at least one restaurant has on
// sale right now.
func (s *CatalogService) AvailableProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if products, err := s.cache.GetProducts(ctx); err == nil {
			return products, nil
		}
	}

	products, err := s.repo.ListAvailableProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	for i := range products {
		if products[i].Image != "" {
			products[i].Image = joinURL(s.mediaURL, products[i].Image)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, products); err != nil {
			s.logger.Warnw("failed to cache product list", "error", err)
		}
	}
	return products, nil
}

func joinURL(prefix, name string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(name, "/")
}
