package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"foodcart/foodcart-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const availableProductsKey = "catalog:available_products"

var ErrCacheMiss = errors.New("cache miss")

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := c.Client.Get(ctx, availableProductsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *RedisCache) SetProducts(ctx context.Context, products []domain.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, availableProductsKey, payload, c.TTL).Err()
}
