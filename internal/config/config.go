package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gamehub/gamehub-go/internal/factory"
	mongostorage "github.com/gamehub/gamehub-go/internal/storage/mongo"
	redisstorage "github.com/gamehub/gamehub-go/internal/storage/redis"
)

// Config is the server configuration read from the environment
type Config struct {
	Host        string
	Port        int
	StorageType string
	MongoURI    string
	RedisURL    string
	LogLevel    slog.Level

	AllowedOrigins     []string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// Load reads configuration from the environment, applying defaults for
// anything unset
func Load() (Config, error) {
	cfg := Config{
		Host:           getEnv("HOST", ""),
		StorageType:    getEnv("STORAGE_TYPE", factory.StorageTypeMongo),
		MongoURI:       getEnv("MONGODB_URI", mongostorage.DefaultConfig().URI),
		RedisURL:       getEnv("REDIS_URL", redisstorage.DefaultConfig().URL),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 5000); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimitRPS, err = getEnvFloat("AUTH_RATE_LIMIT_RPS", 1); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimitBurst, err = getEnvInt("AUTH_RATE_LIMIT_BURST", 10); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	// An empty list or "*" makes gorilla/handlers answer every origin
	if len(cfg.AllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: no origins listed")
	}
	if slices.Contains(cfg.AllowedOrigins, "*") {
		return Config{}, fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: wildcard not allowed with credentials")
	}

	switch cfg.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeRedis, factory.StorageTypeMongo:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_TYPE %q", cfg.StorageType)
	}

	return cfg, nil
}

// Factory builds the application factory configuration
func (c Config) Factory(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	case factory.StorageTypeMongo:
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = c.MongoURI
		fc.MongoConfig = &mongoCfg
	}

	return fc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
