package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/inqgamerz48/university-management-v2.0/internal/auth"
	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/config"
	"github.com/inqgamerz48/university-management-v2.0/internal/httpx"
	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
	"github.com/inqgamerz48/university-management-v2.0/internal/sessioncache"
	"github.com/inqgamerz48/university-management-v2.0/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providerClient := provider.NewClient(cfg.ProviderURL, cfg.ProviderAPIKey, cfg.RequestTimeout)
	backendClient := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	storageClient := storage.NewClient(cfg.StorageURL, cfg.StorageKey, cfg.RequestTimeout)

	var cache sessioncache.Store = sessioncache.NewMemory()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisClient.Close()
		cache = sessioncache.NewRedis(redisClient)
	}

	registry := httpx.NewRegistry(cache, func() *auth.Manager {
		manager := auth.NewManager(providerClient, backendClient)
		manager.RefreshWindow = cfg.RefreshWindow
		manager.RefreshInterval = cfg.RefreshInterval
		return manager
	}, cfg.SessionTTL)
	go registry.Run(ctx, cfg.SessionSweep)

	server := httpx.NewServer(cfg, registry, backendClient, storageClient)
	httpServer := httpx.NewHTTPServer(cfg.HTTPAddr, server.Router())

	go func() {
		log.Printf("portal http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
