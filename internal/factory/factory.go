package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gamehub/gamehub-go/internal/dependencies/clock"
	"github.com/gamehub/gamehub-go/internal/dependencies/ids"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/observability"
	"github.com/gamehub/gamehub-go/internal/services/auth"
	"github.com/gamehub/gamehub-go/internal/services/catalog"
	"github.com/gamehub/gamehub-go/internal/services/play"
	"github.com/gamehub/gamehub-go/internal/storage"
	"github.com/gamehub/gamehub-go/internal/storage/memory"
	mongostorage "github.com/gamehub/gamehub-go/internal/storage/mongo"
	redisstorage "github.com/gamehub/gamehub-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeMongo  = "mongo"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	AuthService    *auth.Service
	CatalogService *catalog.Service
	PlayService    *play.Service

	// Metrics is shared by the HTTP layer
	Metrics *observability.Metrics

	closeStorage func(ctx context.Context) error
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Games overrides the seeded catalog (optional)
	// If nil, catalog.DefaultGames() is used
	Games []model.Game
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "mongo")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MongoConfig holds MongoDB connection settings (required if StorageType is "mongo")
	MongoConfig *mongostorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	closeStorage := func(context.Context) error { return nil }
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
		closeStorage = func(context.Context) error { return redisStore.Close() }
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		mongoStore, err := mongostorage.New(ctx, *cfg.MongoConfig)
		if err != nil {
			return nil, err
		}
		store = mongoStore
		closeStorage = mongoStore.Close
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'mongo'", storageType)
	}

	app := newWithDependencies(store, clock.New(), ids.New(), cfg.AuthConfig, cfg.Games, logger)
	app.closeStorage = closeStorage
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, idGen ids.Generator, authCfg auth.Config, games []model.Game, logger *slog.Logger) *App {
	catalogService := catalog.New(store, games, logger)
	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            idGen,
		AuthService:    auth.New(store, clk, idGen, authCfg, logger),
		CatalogService: catalogService,
		PlayService:    play.New(catalogService, store, clk, idGen, logger),
		Metrics:        observability.NewMetrics(),
		closeStorage:   func(context.Context) error { return nil },
	}
}

// Close releases the storage backend's connections
func (a *App) Close(ctx context.Context) error {
	return a.closeStorage(ctx)
}
