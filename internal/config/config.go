package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr        string
	ProviderURL     string
	ProviderAPIKey  string
	BackendURL      string
	StorageURL      string
	StorageKey      string
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
	RefreshWindow   time.Duration
	RefreshInterval time.Duration
	SessionTTL      time.Duration
	SessionSweep    time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ProviderURL:     getenv("AUTH_PROVIDER_URL", "http://127.0.0.1:9999/auth/v1"),
		ProviderAPIKey:  getenv("AUTH_PROVIDER_KEY", ""),
		BackendURL:      getenv("BACKEND_API_URL", "http://127.0.0.1:8000/api/v1"),
		StorageURL:      getenv("STORAGE_URL", "http://127.0.0.1:9999/storage/v1"),
		StorageKey:      getenv("STORAGE_SERVICE_KEY", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		RequestTimeout:  getenvDuration("REQUEST_TIMEOUT", 10*time.Second),
		RefreshWindow:   getenvDuration("TOKEN_REFRESH_WINDOW", 2*time.Minute),
		RefreshInterval: getenvDuration("TOKEN_REFRESH_INTERVAL", 30*time.Second),
		SessionTTL:      getenvDuration("SESSION_TTL", 12*time.Hour),
		SessionSweep:    getenvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
