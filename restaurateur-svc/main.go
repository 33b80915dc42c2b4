package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart/config"
	"foodcart/geocoding"
	httpapi "foodcart/restaurateur-svc/internal/api/http"
	"foodcart/restaurateur-svc/internal/service"
	"foodcart/restaurateur-svc/internal/storage"
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

	resolver := geocoding.NewResolver(
		geocoding.NewPostgresPlaces(db),
		geocoding.NewRedisPlaces(rdb, config.GetDuration("PLACE_CACHE_TTL", 24*time.Hour)),
		geocoding.NewYandexGeocoder(
			os.Getenv("YANDEX_GEOCODER_API_KEY"),
			config.GetEnv("GEOCODER_URL", geocoding.DefaultYandexURL),
		),
		logger,
	)

	repo := storage.NewPostgresRepository(db)
	qr := service.DefaultQRGenerator{MapsURL: config.GetEnv("MAPS_URL", "https://yandex.ru/maps/")}
	manager := service.NewManagerService(repo, resolver, qr, logger)

	sessionTTL := config.GetDuration("SESSION_TTL", 12*time.Hour)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatalw("JWT_SECRET is not set")
	}
	auth := service.NewAuthService(repo, secret, sessionTTL)

	if username := os.Getenv("STAFF_USERNAME"); username != "" {
		if err := auth.EnsureStaffUser(ctx, username, os.Getenv("STAFF_PASSWORD")); err != nil {
			logger.Fatalw("failed to create staff user", "username", username, "error", err)
		}
		logger.Infow("staff user ready", "username", username)
	}

	handler := httpapi.NewHandler(manager, auth, sessionTTL, logger)
	router := httpapi.NewRouter(handler)

	if err := httpapi.StartServer(ctx, config.GetEnv("ADDR", ":8082"), router, logger); err != nil {
		logger.Fatalw("server failed", "error", err)
	}
}
