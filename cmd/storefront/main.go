package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LegacyPlugin/platform-app/internal/cart"
	"github.com/LegacyPlugin/platform-app/internal/catalog"
	"github.com/LegacyPlugin/platform-app/internal/checkout"
	"github.com/LegacyPlugin/platform-app/internal/config"
	storehttp "github.com/LegacyPlugin/platform-app/internal/http"
	"github.com/LegacyPlugin/platform-app/internal/session"
	"github.com/LegacyPlugin/platform-app/internal/upstream"
)

func main() {
	cfg := config.Load()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancelPing()

	api := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	cartSvc := cart.NewService(cart.NewRedisStorage(redisClient))
	catalogSvc := catalog.NewService(api, catalog.NewRedisCache(redisClient, cfg.CatalogTTL))
	checkoutMgr := checkout.NewManager(api, cartSvc)

	events := session.NewBroker()
	sessionMgr := session.NewManager(session.NewRedisStore(redisClient), api, events)

	// A logout invalidates any in-progress checkout for that browser session.
	authEvents, cancelEvents := events.Subscribe()
	defer cancelEvents()
	go func() {
		for ev := range authEvents {
			if ev.Type == session.EventLoggedOut {
				checkoutMgr.Drop(ev.SessionID)
			}
		}
	}()

	router := storehttp.NewRouter(storehttp.Deps{
		Sessions:       sessionMgr,
		Cart:           cartSvc,
		Catalog:        catalogSvc,
		Finder:         catalogSvc,
		Checkout:       checkoutMgr,
		Account:        api,
		Admin:          api,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
