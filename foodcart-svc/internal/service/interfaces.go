package service

import (
	"context"

	"foodcart/foodcart-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
	PricesByIDs(ctx context.Context, ids []int) (map[int]decimal.Decimal, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, msg domain.KafkaMessage) error
}

type CatalogServiceInterface interface {
	Banners() []domain.Banner
	AvailableProducts(ctx context.Context) ([]domain.Product, error)
}

type OrderServiceInterface interface {
	Register(ctx context.Context, payload OrderPayload) (*domain.OrderResponse, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
)
