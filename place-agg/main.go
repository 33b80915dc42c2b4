package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart/config"
	"foodcart/geocoding"
	"foodcart/place-agg/internal/service"
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

	reader := config.NewKafkaReader(config.GetEnv("ORDERS_TOPIC", "orders"), "place-agg-consumer")
	defer reader.Close()

	resolver := geocoding.NewResolver(
		geocoding.NewPostgresPlaces(db),
		geocoding.NewRedisPlaces(rdb, config.GetDuration("PLACE_CACHE_TTL", 24*time.Hour)),
		geocoding.NewYandexGeocoder(
			os.Getenv("YANDEX_GEOCODER_API_KEY"),
			config.GetEnv("GEOCODER_URL", geocoding.DefaultYandexURL),
		),
		logger,
	)

	consumer := service.NewConsumer(reader, resolver, logger)
	consumer.RetryDelay = config.GetDuration("CONSUMER_RETRY_DELAY", time.Second)
	consumer.Start(ctx)
}
