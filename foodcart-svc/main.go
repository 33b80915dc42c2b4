package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart/config"
	httpapi "foodcart/foodcart-svc/internal/api/http"
	"foodcart/foodcart-svc/internal/service"
	"foodcart/foodcart-svc/internal/storage"
	"foodcart/schema"
)

func main() {
	config.LoadEnv()

	logger := config.NewLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(logger)
	defer db.Close()

	if err := schema.EnsureSchema(ctx, db); err != nil {
		logger.Fatalw("failed to ensure schema", "error", err)
	}

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.GetEnv("ORDERS_TOPIC", "orders"))
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewRedisCache(rdb, config.GetDuration("CATALOG_CACHE_TTL", time.Minute))
	publisher := storage.NewKafkaPublisher(writer)

	catalog := service.NewCatalogService(
		repo,
		cache,
		config.GetEnv("STATIC_URL", "/static/"),
		config.GetEnv("MEDIA_URL", "/media/"),
		logger,
	)
	orders := service.NewOrderService(repo, repo, publisher, config.GetEnv("PHONE_REGION", "RU"), logger)

	handler := httpapi.NewHandler(catalog, orders, logger)
	router := httpapi.NewRouter(handler)

	if err := httpapi.StartServer(ctx, config.GetEnv("ADDR", ":8081"), router, logger); err != nil {
		logger.Fatalw("server failed", "error", err)
	}
}
