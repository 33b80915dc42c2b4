package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcart/api-gateway/internal/gateway"
	"foodcart/config"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()

	logger := config.NewLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := gateway.Config{
		FoodcartSvcURL:     config.GetEnv("FOODCART_SVC_URL", "http://localhost:8081"),
		RestaurateurSvcURL: config.GetEnv("RESTAURATEUR_SVC_URL", "http://localhost:8082"),
		FrontendDir:        config.GetEnv("FRONTEND_DIR", "./frontend"),
		MediaDir:           config.GetEnv("MEDIA_DIR", "./media"),
	}

	// Redirects from upstream, such as the login page, go back to the browser.
	client := &http.Client{
		Timeout: config.GetDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	gw := gateway.NewGateway(cfg, client, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := config.GetEnv("ADDR", ":8080")
	srv := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(gw.SetupRoutes()),
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("gateway shutdown failed", "error", err)
		}
	}()

	logger.Infow("API Gateway starting", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("gateway failed", "error", err)
	}
}
